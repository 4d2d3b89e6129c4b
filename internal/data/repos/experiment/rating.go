package experiment

import (
	"gorm.io/gorm"

	types "github.com/yungbote/bandit-backend/internal/domain"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type RatingRepo interface {
	Create(dbc dbctx.Context, row *types.Rating) (*types.Rating, error)
	ListBySession(dbc dbctx.Context, sessionID uint) ([]*types.Rating, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return &ratingRepo{db: db, log: baseLog.With("repo", "RatingRepo")}
}

func (r *ratingRepo) Create(dbc dbctx.Context, row *types.Rating) (*types.Rating, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *ratingRepo) ListBySession(dbc dbctx.Context, sessionID uint) ([]*types.Rating, error) {
	var results []*types.Rating
	if sessionID == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
