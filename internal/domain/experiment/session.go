package experiment

import "time"

// Session is one experimental run for one player. It stays open until Completed is set.
// A player may own many sessions; only the latest open one is addressed by writes.
type Session struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID string `gorm:"column:player_id;not null;index:idx_session_player_open,priority:1" json:"player_id"`

	SelectedCue string `gorm:"column:selected_cue;not null" json:"selected_cue"`
	// PhaseOrder is the comma separated phase plan, e.g. "ADDICTIVE_CUE,MONETARY". Stored opaque.
	PhaseOrder            string `gorm:"column:phase_order;not null" json:"phase_order"`
	ProbabilitySequenceID string `gorm:"column:probability_sequence_id;not null" json:"probability_sequence_id"`
	RatingSequenceID      string `gorm:"column:rating_sequence_id;not null" json:"rating_sequence_id"`

	StartTime time.Time  `gorm:"column:start_time;not null;index:idx_session_player_open,priority:3" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time"`
	Completed bool       `gorm:"column:completed;not null;default:false;index:idx_session_player_open,priority:2" json:"completed"`

	Trials  []Trial  `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Ratings []Rating `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Session) TableName() string { return "sessions" }

// IsOpen reports whether trial and rating writes may still attach to s.
func (s *Session) IsOpen() bool { return s != nil && !s.Completed }
