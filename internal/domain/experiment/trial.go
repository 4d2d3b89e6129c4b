package experiment

import "time"

// Trial is one slot-machine choice logged within a session. Rows are immutable once written.
type Trial struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uint   `gorm:"column:session_id;not null;index" json:"session_id"`
	PlayerID  string `gorm:"column:player_id;not null;index" json:"player_id"`

	TrialNumberGlobal int    `gorm:"column:trial_number_global;not null;index" json:"trial_number_global"`
	TrialNumberPhase  int    `gorm:"column:trial_number_phase;not null" json:"trial_number_phase"`
	Phase             string `gorm:"column:phase;not null" json:"phase"`
	IsPractice        bool   `gorm:"column:is_practice;not null;default:false" json:"is_practice"`

	WinningCueType               *string `gorm:"column:winning_cue_type" json:"winning_cue_type"`
	LeftMachineProb              float64 `gorm:"column:left_machine_prob;not null" json:"left_machine_prob"`
	RightMachineProb             float64 `gorm:"column:right_machine_prob;not null" json:"right_machine_prob"`
	ProbabilitySwitchedThisTrial bool    `gorm:"column:probability_switched_this_trial;not null;default:false" json:"probability_switched_this_trial"`

	// Choice is "left", "right" or "NO_RESPONSE"; Outcome is "WIN" or "LOSS".
	Choice         *string  `gorm:"column:choice" json:"choice"`
	ResponseTimeMS *float64 `gorm:"column:response_time_ms" json:"response_time_ms"`
	Outcome        *string  `gorm:"column:outcome" json:"outcome"`

	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (Trial) TableName() string { return "trials" }
