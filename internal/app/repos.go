package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bandit-backend/internal/data/repos"
	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type Repos struct {
	Session repos.SessionRepo
	Trial   repos.TrialRepo
	Rating  repos.RatingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Session: repos.NewSessionRepo(db, log),
		Trial:   repos.NewTrialRepo(db, log),
		Rating:  repos.NewRatingRepo(db, log),
	}
}
