package http

const rfc3339Layout = "2006-01-02T15:04:05Z07:00"

type venueRequest struct {
	ID      string `json:"id" validate:"omitempty,uuid"`
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
}

type createEventRequest struct {
	Name        string         `json:"name" validate:"required,max=100"`
	SportType   string         `json:"sportType" validate:"required,max=50"`
	StartsAt    string         `json:"startsAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Description string         `json:"description" validate:"max=500"`
	Venues      []venueRequest `json:"venues" validate:"dive"`
}

type updateEventRequest struct {
	EventID     string         `json:"-" validate:"required,uuid"`
	Name        string         `json:"name" validate:"required,max=100"`
	SportType   string         `json:"sportType" validate:"required,max=50"`
	StartsAt    string         `json:"startsAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Description string         `json:"description" validate:"max=500"`
	Venues      []venueRequest `json:"venues" validate:"dive"`
}

type deleteEventRequest struct {
	EventID string `json:"-" validate:"required,uuid"`
}

type getEventRequest struct {
	EventID string `json:"-" validate:"required,uuid"`
}

type listEventsRequest struct {
	Name      string `json:"name"`
	SportType string `json:"sportType"`
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
