package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/data/repos"
	types "github.com/yungbote/bandit-backend/internal/domain"
	"github.com/yungbote/bandit-backend/internal/platform/apierr"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
	"github.com/yungbote/bandit-backend/internal/realtime"
	"github.com/yungbote/bandit-backend/internal/realtime/bus"
)

var (
	// ErrNoActiveSession means the player has no open session to attach a write to.
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidInput    = errors.New("invalid input")
)

const (
	CodeInvalidRequest  = "invalid_request"
	CodeNoActiveSession = "no_active_session"
)

// ExperimentService owns the session lifecycle. "The" session of a player is always
// the most recently started open one; callers never hold a session handle.
type ExperimentService interface {
	// ResolveOpenSession returns nil, nil when the player has no open session.
	ResolveOpenSession(dbc dbctx.Context, playerID string) (*types.Session, error)
	StartSession(dbc dbctx.Context, in StartSessionInput) (*types.Session, error)
	LogTrial(dbc dbctx.Context, in TrialInput) (*types.Trial, error)
	LogRating(dbc dbctx.Context, in RatingInput) (*types.Rating, error)
	// EndSession returns nil, nil when nothing was open; that is not an error.
	EndSession(dbc dbctx.Context, playerID string) (*types.Session, error)
}

type ExperimentOption func(*experimentService)

// WithClock overrides the server clock used for start, end and write timestamps.
func WithClock(now func() time.Time) ExperimentOption {
	return func(s *experimentService) {
		if now != nil {
			s.now = now
		}
	}
}

type experimentService struct {
	db       *gorm.DB
	log      *logger.Logger
	sessions repos.SessionRepo
	trials   repos.TrialRepo
	ratings  repos.RatingRepo
	events   bus.Bus
	now      func() time.Time
}

func NewExperimentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	sessions repos.SessionRepo,
	trials repos.TrialRepo,
	ratings repos.RatingRepo,
	events bus.Bus,
	opts ...ExperimentOption,
) ExperimentService {
	if events == nil {
		events = bus.NewNoopBus()
	}
	s := &experimentService{
		db:       db,
		log:      baseLog.With("service", "ExperimentService"),
		sessions: sessions,
		trials:   trials,
		ratings:  ratings,
		events:   events,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *experimentService) ResolveOpenSession(dbc dbctx.Context, playerID string) (*types.Session, error) {
	return s.sessions.LatestOpenByPlayer(dbc, playerID)
}

// StartSession never checks for an existing open session; a duplicate start simply
// becomes the newest candidate for later resolution.
func (s *experimentService) StartSession(dbc dbctx.Context, in StartSessionInput) (*types.Session, error) {
	if err := in.validate(); err != nil {
		return nil, apierr.BadRequest(CodeInvalidRequest, err)
	}
	created, err := s.sessions.Create(dbc, in.toSession(s.now()))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info("Created session", "session", created.ID, "player_id", created.PlayerID)
	s.publish(dbc.Ctx, realtime.NewEvent(realtime.EventSessionStarted, created.PlayerID, created.ID, map[string]any{
		"selected_cue":            created.SelectedCue,
		"phase_order":             created.PhaseOrder,
		"probability_sequence_id": created.ProbabilitySequenceID,
		"rating_sequence_id":      created.RatingSequenceID,
	}))
	return created, nil
}

func (s *experimentService) LogTrial(dbc dbctx.Context, in TrialInput) (*types.Trial, error) {
	if err := in.validate(); err != nil {
		return nil, apierr.BadRequest(CodeInvalidRequest, err)
	}
	var created *types.Trial
	err := s.inTx(dbc, func(txc dbctx.Context) error {
		session, err := s.resolveForWrite(txc, in.PlayerID)
		if err != nil {
			return err
		}
		created, err = s.trials.Create(txc, in.toTrial(session.ID, s.now()))
		if err != nil {
			return fmt.Errorf("create trial: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			s.log.Warn("No active session when logging trial", "player_id", in.PlayerID, "trial_number_global", *in.TrialNumberGlobal)
		}
		return nil, err
	}
	s.publish(dbc.Ctx, realtime.NewEvent(realtime.EventTrialLogged, created.PlayerID, created.SessionID, map[string]any{
		"trial_number_global": created.TrialNumberGlobal,
		"phase":               created.Phase,
		"choice":              created.Choice,
		"outcome":             created.Outcome,
	}))
	return created, nil
}

func (s *experimentService) LogRating(dbc dbctx.Context, in RatingInput) (*types.Rating, error) {
	if err := in.validate(); err != nil {
		return nil, apierr.BadRequest(CodeInvalidRequest, err)
	}
	var created *types.Rating
	err := s.inTx(dbc, func(txc dbctx.Context) error {
		session, err := s.resolveForWrite(txc, in.PlayerID)
		if err != nil {
			return err
		}
		created, err = s.ratings.Create(txc, in.toRating(session.ID, s.now()))
		if err != nil {
			return fmt.Errorf("create rating: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			s.log.Warn("No active session when logging rating", "player_id", in.PlayerID, "trial_number_before_rating", *in.TrialNumberBeforeRating)
		}
		return nil, err
	}
	s.publish(dbc.Ctx, realtime.NewEvent(realtime.EventRatingLogged, created.PlayerID, created.SessionID, map[string]any{
		"rating_type":                created.RatingType,
		"rating_value":               created.RatingValue,
		"trial_number_before_rating": created.TrialNumberBeforeRating,
	}))
	return created, nil
}

func (s *experimentService) EndSession(dbc dbctx.Context, playerID string) (*types.Session, error) {
	// Player ids are matched exactly as they were stored; only a blank id is rejected.
	if strings.TrimSpace(playerID) == "" {
		return nil, apierr.BadRequest(CodeInvalidRequest, fmt.Errorf("%w: missing player_id", ErrInvalidInput))
	}
	var closed *types.Session
	err := s.inTx(dbc, func(txc dbctx.Context) error {
		session, err := s.sessions.LatestOpenByPlayerForUpdate(txc, playerID)
		if err != nil {
			return fmt.Errorf("resolve open session: %w", err)
		}
		if session == nil {
			return nil
		}
		if err := s.sessions.MarkComplete(txc, session, s.now()); err != nil {
			if errors.Is(err, repos.ErrSessionNotOpen) {
				return nil
			}
			return fmt.Errorf("mark session complete: %w", err)
		}
		closed = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	if closed == nil {
		s.log.Warn("No active session to mark complete", "player_id", playerID)
		return nil, nil
	}
	s.log.Info("Marked session complete", "session", closed.ID, "player_id", playerID)
	s.publish(dbc.Ctx, realtime.NewEvent(realtime.EventSessionEnded, closed.PlayerID, closed.ID, map[string]any{
		"start_time": closed.StartTime,
		"end_time":   closed.EndTime,
	}))
	return closed, nil
}

func (s *experimentService) resolveForWrite(txc dbctx.Context, playerID string) (*types.Session, error) {
	session, err := s.sessions.LatestOpenByPlayerForUpdate(txc, playerID)
	if err != nil {
		return nil, fmt.Errorf("resolve open session: %w", err)
	}
	if session == nil {
		return nil, apierr.NotFound(CodeNoActiveSession, fmt.Errorf("%w found for player %s", ErrNoActiveSession, playerID))
	}
	return session, nil
}

// inTx runs fn in a transaction so the session resolved by fn is still the latest open
// one when fn writes against it. An outer dbc.Tx becomes a savepoint.
func (s *experimentService) inTx(dbc dbctx.Context, fn func(txc dbctx.Context) error) error {
	ctx := dbc.Ctx
	if ctx == nil {
		ctx = context.Background()
		dbc.Ctx = ctx
	}
	base := dbc.Tx
	if base == nil {
		base = s.db
	}
	return base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbc.WithTx(tx))
	})
}

// Notifications are best effort and only go out after the write committed.
func (s *experimentService) publish(ctx context.Context, ev realtime.Event) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("Publish event failed", "type", ev.Type, "session", ev.SessionID, "error", err)
	}
}
