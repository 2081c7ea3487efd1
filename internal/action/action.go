// Package action wraps a unit of work with a uniform request/response
// contract: validate the input, resolve the caller identity, invoke the
// handler, and normalize every outcome into one tagged result. Run never
// lets a fault escape to the caller.
package action

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/validation"
)

const (
	MsgAuthRequired     = "Authentication required to perform this action"
	MsgValidationFailed = "validation failed"
	MsgOperationFailed  = "operation failed"
	MsgUnexpectedError  = "unexpected error"
)

// Result is the tagged outcome every action resolves to: exactly one of
// the success or error variants, matching the wire contract
// {success, data, message?} / {success:false, error, fieldErrors?}.
type Result[T any] struct {
	Success     bool                   `json:"success"`
	Data        *T                     `json:"data,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Error       string                 `json:"error,omitempty"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
}

// Reply is the typed handler return: data plus an optional message that,
// when set, takes precedence over the action's configured static message.
type Reply[T any] struct {
	Data    T
	Message string
}

func OK[T any](data T) Reply[T] {
	return Reply[T]{Data: data}
}

func OKMsg[T any](data T, message string) Reply[T] {
	return Reply[T]{Data: data, Message: message}
}

// ClientError carries a message safe to surface to the caller. Any other
// error is logged server-side and reported as a generic failure.
type ClientError struct {
	msg string
}

func (e *ClientError) Error() string { return e.msg }

// Client makes a sentinel error whose message is shown to the caller as-is.
func Client(msg string) *ClientError {
	return &ClientError{msg: msg}
}

// IdentityResolver resolves zero or one authenticated identity from the
// ambient request context.
type IdentityResolver interface {
	Identity(ctx context.Context) (models.Identity, error)
}

type Handler[In, Out any] func(ctx context.Context, in In, ident *models.Identity) (Reply[Out], error)

type Config struct {
	Log *slog.Logger
	// Validator is optional; nil skips the validation step.
	Validator *validation.Validator
	Resolver  IdentityResolver
	// Public skips identity resolution; the zero value requires auth.
	Public bool
	// Message is the static success message, used when the handler reply
	// carries none.
	Message string
}

type Action[In, Out any] struct {
	cfg     Config
	handler Handler[In, Out]
}

func New[In, Out any](
	cfg Config,
	handler func(ctx context.Context, in In, ident *models.Identity) (Reply[Out], error),
) *Action[In, Out] {
	return &Action[In, Out]{cfg: cfg, handler: handler}
}

// Run executes the pipeline: validate first, then authenticate, then the
// handler. Validation runs before the auth gate so a malformed request
// reveals nothing about the caller's auth state.
func (a *Action[In, Out]) Run(ctx context.Context, in In) (result Result[Out]) {
	const op = "action.Run"
	log := a.cfg.Log.With(slog.String("op", op))

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			result = Result[Out]{Error: MsgUnexpectedError}
		}
	}()

	if a.cfg.Validator != nil {
		fieldErrors, err := a.cfg.Validator.Check(in)
		if err != nil {
			log.Error("validator fault", slog.String("error", err.Error()))
			return Result[Out]{Error: MsgUnexpectedError}
		}
		if fieldErrors != nil {
			return Result[Out]{Error: MsgValidationFailed, FieldErrors: fieldErrors}
		}
	}

	var ident *models.Identity
	if !a.cfg.Public {
		resolved, err := a.cfg.Resolver.Identity(ctx)
		if err != nil {
			return Result[Out]{Error: MsgAuthRequired}
		}
		ident = &resolved
	}

	reply, err := a.handler(ctx, in, ident)
	if err != nil {
		var clientErr *ClientError
		if errors.As(err, &clientErr) {
			return Result[Out]{Error: clientErr.Error()}
		}

		log.Error("handler fault", slog.String("error", err.Error()))
		return Result[Out]{Error: MsgOperationFailed}
	}

	message := reply.Message
	if message == "" {
		message = a.cfg.Message
	}

	return Result[Out]{Success: true, Data: &reply.Data, Message: message}
}
