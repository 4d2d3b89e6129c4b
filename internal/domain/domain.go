package domain

import (
	"github.com/yungbote/bandit-backend/internal/domain/experiment"
)

const (
	RatingTypeCraving = experiment.RatingTypeCraving
	RatingTypeMood    = experiment.RatingTypeMood
)

type Session = experiment.Session
type Trial = experiment.Trial
type Rating = experiment.Rating

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&Session{},
		&Trial{},
		&Rating{},
	}
}
