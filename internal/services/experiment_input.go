package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	types "github.com/yungbote/bandit-backend/internal/domain"
)

// Required fields other than player_id are pointers so that "", 0 and false bind while
// absence is rejected.

type StartSessionInput struct {
	PlayerID              string  `json:"player_id" binding:"required"`
	SelectedCue           *string `json:"selected_cue" binding:"required"`
	PhaseOrder            *string `json:"phase_order" binding:"required"`
	ProbabilitySequenceID *string `json:"probability_sequence_id" binding:"required"`
	RatingSequenceID      *string `json:"rating_sequence_id" binding:"required"`
}

type TrialInput struct {
	PlayerID                     string   `json:"player_id" binding:"required"`
	TrialNumberGlobal            *int     `json:"trial_number_global" binding:"required"`
	TrialNumberPhase             *int     `json:"trial_number_phase" binding:"required"`
	Phase                        *string  `json:"phase" binding:"required"`
	IsPractice                   *bool    `json:"is_practice" binding:"required"`
	WinningCueType               *string  `json:"winning_cue_type"`
	LeftMachineProb              *float64 `json:"left_machine_prob" binding:"required"`
	RightMachineProb             *float64 `json:"right_machine_prob" binding:"required"`
	ProbabilitySwitchedThisTrial *bool    `json:"probability_switched_this_trial" binding:"required"`
	Choice                       *string  `json:"choice"`
	ResponseTimeMS               *float64 `json:"response_time_ms"`
	Outcome                      *string  `json:"outcome"`
}

type RatingInput struct {
	PlayerID                string  `json:"player_id" binding:"required"`
	TrialNumberBeforeRating *int    `json:"trial_number_before_rating" binding:"required"`
	RatingType              *string `json:"rating_type" binding:"required"`
	RatingValue             *int    `json:"rating_value" binding:"required"`
}

func (in StartSessionInput) validate() error {
	return requireFields(map[string]bool{
		"player_id":               strings.TrimSpace(in.PlayerID) != "",
		"selected_cue":            in.SelectedCue != nil,
		"phase_order":             in.PhaseOrder != nil,
		"probability_sequence_id": in.ProbabilitySequenceID != nil,
		"rating_sequence_id":      in.RatingSequenceID != nil,
	})
}

func (in TrialInput) validate() error {
	return requireFields(map[string]bool{
		"player_id":                       strings.TrimSpace(in.PlayerID) != "",
		"trial_number_global":             in.TrialNumberGlobal != nil,
		"trial_number_phase":              in.TrialNumberPhase != nil,
		"phase":                           in.Phase != nil,
		"is_practice":                     in.IsPractice != nil,
		"left_machine_prob":               in.LeftMachineProb != nil,
		"right_machine_prob":              in.RightMachineProb != nil,
		"probability_switched_this_trial": in.ProbabilitySwitchedThisTrial != nil,
	})
}

func (in RatingInput) validate() error {
	return requireFields(map[string]bool{
		"player_id":                  strings.TrimSpace(in.PlayerID) != "",
		"trial_number_before_rating": in.TrialNumberBeforeRating != nil,
		"rating_type":                in.RatingType != nil,
		"rating_value":               in.RatingValue != nil,
	})
}

func requireFields(present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing required field(s) %s", ErrInvalidInput, strings.Join(missing, ", "))
}

func (in StartSessionInput) toSession(startedAt time.Time) *types.Session {
	return &types.Session{
		PlayerID:              in.PlayerID,
		SelectedCue:           *in.SelectedCue,
		PhaseOrder:            *in.PhaseOrder,
		ProbabilitySequenceID: *in.ProbabilitySequenceID,
		RatingSequenceID:      *in.RatingSequenceID,
		StartTime:             startedAt,
		Completed:             false,
	}
}

func (in TrialInput) toTrial(sessionID uint, at time.Time) *types.Trial {
	return &types.Trial{
		SessionID:                    sessionID,
		PlayerID:                     in.PlayerID,
		TrialNumberGlobal:            *in.TrialNumberGlobal,
		TrialNumberPhase:             *in.TrialNumberPhase,
		Phase:                        *in.Phase,
		IsPractice:                   *in.IsPractice,
		WinningCueType:               in.WinningCueType,
		LeftMachineProb:              *in.LeftMachineProb,
		RightMachineProb:             *in.RightMachineProb,
		ProbabilitySwitchedThisTrial: *in.ProbabilitySwitchedThisTrial,
		Choice:                       in.Choice,
		ResponseTimeMS:               in.ResponseTimeMS,
		Outcome:                      in.Outcome,
		Timestamp:                    at,
	}
}

func (in RatingInput) toRating(sessionID uint, at time.Time) *types.Rating {
	return &types.Rating{
		SessionID:               sessionID,
		PlayerID:                in.PlayerID,
		TrialNumberBeforeRating: *in.TrialNumberBeforeRating,
		RatingType:              *in.RatingType,
		RatingValue:             *in.RatingValue,
		Timestamp:               at,
	}
}
