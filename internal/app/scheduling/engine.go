package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/coursesched/internal/pkg/apperrors"
)

// DefaultAdmissionTimeout bounds how long one admission may wait for its locks and commit
const DefaultAdmissionTimeout = 10 * time.Second

// Engine admits sessions and enrollments and guards course edits.
type Engine struct {
	store   Store
	logger  zerolog.Logger
	timeout time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithAdmissionTimeout overrides DefaultAdmissionTimeout. Zero disables the bound.
func WithAdmissionTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// NewEngine creates an engine over store
func NewEngine(store Store, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		logger:  logger.With().Str("component", "scheduling").Logger(),
		timeout: DefaultAdmissionTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calendar returns a calendar over the engine's committed sessions
func (e *Engine) Calendar() *Calendar {
	return NewCalendar(e.store)
}

// atomically runs fn under the given keys, bounded by the admission timeout
func (e *Engine) atomically(ctx context.Context, keys []ResourceKey, fn func(ctx context.Context, tx Store) error) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.store.WithinTx(ctx, keys, fn)
}

func notFound(resource string, id uuid.UUID, err error) error {
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return apperrors.NewCustomError(apperrors.ErrResourceNotFound, fmt.Sprintf("%s not found", resource)).
			WithDetails(map[string]interface{}{"resource": resource, "id": id.String()})
	}
	return err
}

func conflict(kind error, with uuid.UUID) error {
	return apperrors.NewCustomError(kind, kind.Error()).
		WithDetails(map[string]interface{}{"conflictingId": with.String()})
}
