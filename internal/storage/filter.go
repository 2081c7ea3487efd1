package storage

// EventFilter narrows an event listing. Zero values mean "no filter".
// Name matches as a case-insensitive substring, SportType matches exactly.
type EventFilter struct {
	Name      string
	SportType string
}

func (f EventFilter) IsZero() bool {
	return f.Name == "" && f.SportType == ""
}
