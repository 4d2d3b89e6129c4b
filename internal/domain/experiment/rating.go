package experiment

import "time"

const (
	RatingTypeCraving = "CRAVING"
	RatingTypeMood    = "MOOD"
)

// Rating is one self-report logged within a session.
type Rating struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uint   `gorm:"column:session_id;not null;index" json:"session_id"`
	PlayerID  string `gorm:"column:player_id;not null;index" json:"player_id"`

	TrialNumberBeforeRating int    `gorm:"column:trial_number_before_rating;not null;index" json:"trial_number_before_rating"`
	RatingType              string `gorm:"column:rating_type;not null" json:"rating_type"`
	RatingValue             int    `gorm:"column:rating_value;not null" json:"rating_value"`

	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Rating) TableName() string { return "ratings" }
