package experiment

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/bandit-backend/internal/domain"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

// ErrSessionNotOpen is returned when a close targets a session that is already completed.
var ErrSessionNotOpen = errors.New("session is not open")

type SessionRepo interface {
	Create(dbc dbctx.Context, row *types.Session) (*types.Session, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Session, error)
	// LatestOpenByPlayer returns the most recently started open session, or nil when none exists.
	LatestOpenByPlayer(dbc dbctx.Context, playerID string) (*types.Session, error)
	// LatestOpenByPlayerForUpdate is LatestOpenByPlayer with a row lock held until dbc.Tx ends.
	LatestOpenByPlayerForUpdate(dbc dbctx.Context, playerID string) (*types.Session, error)
	MarkComplete(dbc dbctx.Context, row *types.Session, endTime time.Time) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(dbc dbctx.Context, row *types.Session) (*types.Session, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uint) (*types.Session, error) {
	if id == 0 {
		return nil, nil
	}
	var row types.Session
	err := dbc.Conn(r.db).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sessionRepo) LatestOpenByPlayer(dbc dbctx.Context, playerID string) (*types.Session, error) {
	return r.latestOpen(dbc.Conn(r.db), playerID)
}

func (r *sessionRepo) LatestOpenByPlayerForUpdate(dbc dbctx.Context, playerID string) (*types.Session, error) {
	q := dbc.Conn(r.db)
	// SQLite has no row locks; its single writer connection already serializes the transaction.
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.latestOpen(q, playerID)
}

// Coincident start times fall back to id, so the later insert wins.
func (r *sessionRepo) latestOpen(q *gorm.DB, playerID string) (*types.Session, error) {
	if playerID == "" {
		return nil, nil
	}
	var rows []types.Session
	if err := q.
		Where("player_id = ? AND completed = ?", playerID, false).
		Order("start_time DESC").
		Order("id DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *sessionRepo) MarkComplete(dbc dbctx.Context, row *types.Session, endTime time.Time) error {
	if row == nil || row.ID == 0 {
		return nil
	}
	if !row.IsOpen() {
		return ErrSessionNotOpen
	}
	// The completed guard also catches a close that committed after row was read.
	res := dbc.Conn(r.db).
		Model(&types.Session{}).
		Where("id = ? AND completed = ?", row.ID, false).
		Updates(map[string]any{
			"completed": true,
			"end_time":  endTime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotOpen
	}
	row.Completed = true
	row.EndTime = &endTime
	return nil
}
