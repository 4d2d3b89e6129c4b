package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/data/repos/experiment"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type SessionRepo = experiment.SessionRepo
type TrialRepo = experiment.TrialRepo
type RatingRepo = experiment.RatingRepo

var ErrSessionNotOpen = experiment.ErrSessionNotOpen

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return experiment.NewSessionRepo(db, baseLog)
}
func NewTrialRepo(db *gorm.DB, baseLog *logger.Logger) TrialRepo {
	return experiment.NewTrialRepo(db, baseLog)
}
func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return experiment.NewRatingRepo(db, baseLog)
}
