package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/avelkov/sporthub/internal/action"
	metricsapp "github.com/avelkov/sporthub/internal/app/metrics"
	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/validation"
	authservice "github.com/avelkov/sporthub/internal/services/auth"
	"github.com/avelkov/sporthub/internal/services/events"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, email string, password string) (token string, err error)
	RegisterNewUser(ctx context.Context, email string, password string) (userID uuid.UUID, err error)
}

type EventsService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in events.CreateEventInput) (events.MutationResult, error)
	Update(ctx context.Context, callerID uuid.UUID, in events.UpdateEventInput) (events.MutationResult, error)
	Delete(ctx context.Context, callerID, eventID uuid.UUID) error
	List(ctx context.Context, filter storage.EventFilter) ([]models.EventWithVenues, error)
	Get(ctx context.Context, eventID uuid.UUID) (models.EventWithVenues, error)
}

type Server struct {
	log     *slog.Logger
	metrics *metricsapp.App

	registerAction *action.Action[registerRequest, registerResponse]
	loginAction    *action.Action[loginRequest, loginResponse]
	createAction   *action.Action[createEventRequest, mutationResponse]
	updateAction   *action.Action[updateEventRequest, mutationResponse]
	deleteAction   *action.Action[deleteEventRequest, deleteResponse]
	listAction     *action.Action[listEventsRequest, []eventResponse]
	getAction      *action.Action[getEventRequest, eventResponse]
}

func NewServer(
	log *slog.Logger,
	validator *validation.Validator,
	resolver action.IdentityResolver,
	authService AuthService,
	eventsService EventsService,
	metrics *metricsapp.App,
) *Server {
	s := &Server{log: log, metrics: metrics}

	s.registerAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Public:    true,
		Message:   "account created",
	}, func(ctx context.Context, req registerRequest, _ *models.Identity) (action.Reply[registerResponse], error) {
		userID, err := authService.RegisterNewUser(ctx, req.Email, req.Password)
		if err != nil {
			return action.Reply[registerResponse]{}, err
		}
		return action.OK(registerResponse{UserID: userID.String()}), nil
	})

	s.loginAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Public:    true,
	}, func(ctx context.Context, req loginRequest, _ *models.Identity) (action.Reply[loginResponse], error) {
		token, err := authService.Login(ctx, req.Email, req.Password)
		if err != nil {
			return action.Reply[loginResponse]{}, err
		}
		return action.OK(loginResponse{Token: token}), nil
	})

	s.createAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Resolver:  resolver,
		Message:   "event created",
	}, func(ctx context.Context, req createEventRequest, ident *models.Identity) (action.Reply[mutationResponse], error) {
		startsAt, err := time.Parse(rfc3339Layout, req.StartsAt)
		if err != nil {
			return action.Reply[mutationResponse]{}, err
		}

		result, err := eventsService.Create(ctx, ident.ID, events.CreateEventInput{
			Name:        req.Name,
			SportType:   req.SportType,
			StartsAt:    startsAt,
			Description: req.Description,
			Venues:      toVenueInputs(req.Venues),
		})
		if err != nil {
			return action.Reply[mutationResponse]{}, err
		}

		resp := mutationResponse{
			Event:         toEventResponse(result.Event),
			SkippedVenues: result.SkippedVenues,
		}
		if len(result.SkippedVenues) > 0 {
			return action.OKMsg(resp, "event created; some venues could not be linked"), nil
		}
		return action.OK(resp), nil
	})

	s.updateAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Resolver:  resolver,
		Message:   "event updated",
	}, func(ctx context.Context, req updateEventRequest, ident *models.Identity) (action.Reply[mutationResponse], error) {
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return action.Reply[mutationResponse]{}, err
		}
		startsAt, err := time.Parse(rfc3339Layout, req.StartsAt)
		if err != nil {
			return action.Reply[mutationResponse]{}, err
		}

		result, err := eventsService.Update(ctx, ident.ID, events.UpdateEventInput{
			EventID:     eventID,
			Name:        req.Name,
			SportType:   req.SportType,
			StartsAt:    startsAt,
			Description: req.Description,
			Venues:      toVenueInputs(req.Venues),
		})
		if err != nil {
			return action.Reply[mutationResponse]{}, err
		}

		resp := mutationResponse{
			Event:         toEventResponse(result.Event),
			SkippedVenues: result.SkippedVenues,
		}
		if len(result.SkippedVenues) > 0 {
			return action.OKMsg(resp, "event updated; some venues could not be linked"), nil
		}
		return action.OK(resp), nil
	})

	s.deleteAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Resolver:  resolver,
		Message:   "event deleted",
	}, func(ctx context.Context, req deleteEventRequest, ident *models.Identity) (action.Reply[deleteResponse], error) {
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return action.Reply[deleteResponse]{}, err
		}

		if err := eventsService.Delete(ctx, ident.ID, eventID); err != nil {
			return action.Reply[deleteResponse]{}, err
		}
		return action.OK(deleteResponse{EventID: eventID.String()}), nil
	})

	s.listAction = action.New(action.Config{
		Log:    log,
		Public: true,
	}, func(ctx context.Context, req listEventsRequest, _ *models.Identity) (action.Reply[[]eventResponse], error) {
		listed, err := eventsService.List(ctx, storage.EventFilter{
			Name:      req.Name,
			SportType: req.SportType,
		})
		if err != nil {
			return action.Reply[[]eventResponse]{}, err
		}
		return action.OK(toEventResponses(listed)), nil
	})

	s.getAction = action.New(action.Config{
		Log:       log,
		Validator: validator,
		Public:    true,
	}, func(ctx context.Context, req getEventRequest, _ *models.Identity) (action.Reply[eventResponse], error) {
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return action.Reply[eventResponse]{}, err
		}

		event, err := eventsService.Get(ctx, eventID)
		if err != nil {
			return action.Reply[eventResponse]{}, err
		}
		return action.OK(toEventResponse(event)), nil
	})

	return s
}

// Handler builds the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	mux.HandleFunc("GET /api/events", s.handleListEvents)
	mux.HandleFunc("GET /api/events/{id}", s.handleGetEvent)
	mux.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	var handler http.Handler = mux
	handler = BearerToken(handler)
	handler = RequestLogger(handler, s.log, s.metrics)
	handler = Recoverer(handler, s.log, s.metrics)

	return handler
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	result := s.registerAction.Run(r.Context(), req)
	respond(s, w, "register", http.StatusCreated, result)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	result := s.loginAction.Run(r.Context(), req)
	respond(s, w, "login", http.StatusOK, result)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decode(w, r, &req) {
		return
	}
	result := s.createAction.Run(r.Context(), req)
	respond(s, w, "create_event", http.StatusCreated, result)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if !decode(w, r, &req) {
		return
	}
	req.EventID = r.PathValue("id")
	result := s.updateAction.Run(r.Context(), req)
	respond(s, w, "update_event", http.StatusOK, result)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	req := deleteEventRequest{EventID: r.PathValue("id")}
	result := s.deleteAction.Run(r.Context(), req)
	respond(s, w, "delete_event", http.StatusOK, result)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	req := listEventsRequest{
		Name:      r.URL.Query().Get("name"),
		SportType: r.URL.Query().Get("sportType"),
	}
	result := s.listAction.Run(r.Context(), req)
	respond(s, w, "list_events", http.StatusOK, result)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	req := getEventRequest{EventID: r.PathValue("id")}
	result := s.getAction.Run(r.Context(), req)
	respond(s, w, "get_event", http.StatusOK, result)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid request body"}`))
		return false
	}
	return true
}

func respond[T any](s *Server, w http.ResponseWriter, name string, okStatus int, result action.Result[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(okStatus, result))
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error("failed to encode response", slog.String("error", err.Error()))
	}
	s.metrics.ActionsTotal.WithLabelValues(name, outcomeOf(result)).Inc()
}

func statusFor[T any](okStatus int, result action.Result[T]) int {
	if result.Success {
		return okStatus
	}
	if result.FieldErrors != nil {
		return http.StatusBadRequest
	}

	switch result.Error {
	case action.MsgAuthRequired, authservice.ErrInvalidCredentials.Error():
		return http.StatusUnauthorized
	case events.ErrPermissionDenied.Error():
		return http.StatusForbidden
	case events.ErrEventNotFound.Error():
		return http.StatusNotFound
	case authservice.ErrUserExists.Error():
		return http.StatusConflict
	case action.MsgOperationFailed, action.MsgUnexpectedError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func outcomeOf[T any](result action.Result[T]) string {
	switch {
	case result.Success:
		return "ok"
	case result.FieldErrors != nil:
		return "validation_failed"
	case result.Error == action.MsgAuthRequired:
		return "auth_required"
	default:
		return "error"
	}
}

func toVenueInputs(venues []venueRequest) []events.VenueInput {
	inputs := make([]events.VenueInput, len(venues))
	for i, venue := range venues {
		inputs[i] = events.VenueInput{
			ID:      venue.ID,
			Name:    venue.Name,
			Address: venue.Address,
			City:    venue.City,
			State:   venue.State,
		}
	}

	return inputs
}
