package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelkov/sporthub/internal/action"
	metricsapp "github.com/avelkov/sporthub/internal/app/metrics"
	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/jwt"
	"github.com/avelkov/sporthub/internal/lib/validation"
	"github.com/avelkov/sporthub/internal/services/events"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

type fakeAuthService struct {
	loginToken  string
	loginErr    error
	registered  []string
	registerErr error
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAuthService) RegisterNewUser(_ context.Context, email, _ string) (uuid.UUID, error) {
	if f.registerErr != nil {
		return uuid.Nil, f.registerErr
	}
	f.registered = append(f.registered, email)
	return uuid.New(), nil
}

type fakeEventsService struct {
	created   *events.CreateEventInput
	createRes events.MutationResult
	getRes    models.EventWithVenues
	getErr    error
	deleted   []uuid.UUID
	listRes   []models.EventWithVenues
	listErr   error
}

func (f *fakeEventsService) Create(_ context.Context, ownerID uuid.UUID, in events.CreateEventInput) (events.MutationResult, error) {
	f.created = &in
	res := f.createRes
	if res.Event.ID == uuid.Nil {
		res.Event = models.EventWithVenues{
			Event: models.Event{
				ID:        uuid.New(),
				Name:      in.Name,
				SportType: in.SportType,
				StartsAt:  in.StartsAt,
				OwnerID:   ownerID,
			},
		}
	}
	return res, nil
}

func (f *fakeEventsService) Update(_ context.Context, _ uuid.UUID, in events.UpdateEventInput) (events.MutationResult, error) {
	return events.MutationResult{
		Event: models.EventWithVenues{
			Event: models.Event{ID: in.EventID, Name: in.Name, SportType: in.SportType, StartsAt: in.StartsAt},
		},
	}, nil
}

func (f *fakeEventsService) Delete(_ context.Context, _, eventID uuid.UUID) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeEventsService) List(_ context.Context, _ storage.EventFilter) ([]models.EventWithVenues, error) {
	return f.listRes, f.listErr
}

func (f *fakeEventsService) Get(_ context.Context, _ uuid.UUID) (models.EventWithVenues, error) {
	return f.getRes, f.getErr
}

type testEnv struct {
	handler     http.Handler
	authService *fakeAuthService
	events      *fakeEventsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := &fakeAuthService{}
	eventsService := &fakeEventsService{}

	server := NewServer(
		log,
		validation.New(),
		NewJWTResolver(testSecret),
		authService,
		eventsService,
		metricsapp.New(log, 0),
	)

	return &testEnv{
		handler:     server.Handler(),
		authService: authService,
		events:      eventsService,
	}
}

func authToken(t *testing.T) string {
	t.Helper()
	user := &models.User{ID: uuid.New(), Email: "owner@example.com"}
	token, err := jwt.NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestCreateEvent_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/events", "", map[string]any{
		"name":      "Spring Cup",
		"sportType": "Soccer",
		"startsAt":  "2026-05-01T10:00:00Z",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, action.MsgAuthRequired, result["error"])
	assert.Nil(t, env.events.created, "handler must not be invoked without identity")
}

func TestCreateEvent_HappyPath(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/events", authToken(t), map[string]any{
		"name":      "Spring Cup",
		"sportType": "Soccer",
		"startsAt":  "2026-05-01T10:00:00Z",
		"venues": []map[string]any{
			{"name": "Central Stadium", "city": "Springfield"},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "event created", result["message"])

	data := result["data"].(map[string]any)
	event := data["event"].(map[string]any)
	assert.Equal(t, "Spring Cup", event["name"])

	require.NotNil(t, env.events.created)
	require.Len(t, env.events.created.Venues, 1)
	assert.Equal(t, "Central Stadium", env.events.created.Venues[0].Name)
}

func TestCreateEvent_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/events", authToken(t), map[string]any{
		"name":      "",
		"sportType": "Soccer",
		"startsAt":  "yesterday",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, action.MsgValidationFailed, result["error"])

	fieldErrors := result["fieldErrors"].(map[string]any)
	assert.Contains(t, fieldErrors, "name")
	assert.Contains(t, fieldErrors, "startsAt")
	assert.NotContains(t, fieldErrors, "sportType")
	assert.Nil(t, env.events.created)
}

func TestCreateEvent_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(`{"unknown":true}`))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, false, result["success"])
}

func TestGetEvent_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.events.getErr = events.ErrEventNotFound

	rec := doJSON(t, env.handler, http.MethodGet, "/api/events/"+uuid.NewString(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, events.ErrEventNotFound.Error(), result["error"])
}

func TestListEvents_Public(t *testing.T) {
	env := newTestEnv(t)
	env.events.listRes = []models.EventWithVenues{
		{Event: models.Event{ID: uuid.New(), Name: "Fall Classic", SportType: "Basketball", OwnerID: uuid.New()}},
	}

	rec := doJSON(t, env.handler, http.MethodGet, "/api/events?sportType=Basketball", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, true, result["success"])

	data := result["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Fall Classic", data[0].(map[string]any)["name"])
}

func TestDeleteEvent_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodDelete, "/api/events/"+uuid.NewString(), "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.events.deleted)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":           "user@example.com",
		"password":        "secret1234",
		"confirmPassword": "different1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	result := decodeResult(t, rec)
	fieldErrors := result["fieldErrors"].(map[string]any)
	assert.Contains(t, fieldErrors, "confirmPassword")
	assert.Empty(t, env.authService.registered)
}

func TestRegister_HappyPath(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env.handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":           "user@example.com",
		"password":        "secret1234",
		"confirmPassword": "secret1234",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "account created", result["message"])
	assert.Equal(t, []string{"user@example.com"}, env.authService.registered)
}

func TestLogin_InvalidTokenIgnoredOnPublicRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.authService.loginToken = "issued-token"

	rec := doJSON(t, env.handler, http.MethodPost, "/api/auth/login", "garbage-token", map[string]any{
		"email":    "user@example.com",
		"password": "secret1234",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, "issued-token", data["token"])
}
