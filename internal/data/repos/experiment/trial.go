package experiment

import (
	"gorm.io/gorm"

	types "github.com/yungbote/bandit-backend/internal/domain"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type TrialRepo interface {
	Create(dbc dbctx.Context, row *types.Trial) (*types.Trial, error)
	ListBySession(dbc dbctx.Context, sessionID uint) ([]*types.Trial, error)
}

type trialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrialRepo(db *gorm.DB, baseLog *logger.Logger) TrialRepo {
	return &trialRepo{db: db, log: baseLog.With("repo", "TrialRepo")}
}

func (r *trialRepo) Create(dbc dbctx.Context, row *types.Trial) (*types.Trial, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *trialRepo) ListBySession(dbc dbctx.Context, sessionID uint) ([]*types.Trial, error) {
	var results []*types.Trial
	if sessionID == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("session_id = ?", sessionID).
		Order("trial_number_global ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
