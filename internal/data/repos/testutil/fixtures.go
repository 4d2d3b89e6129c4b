package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/bandit-backend/internal/domain"
)

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, playerID string, startedAt time.Time) *types.Session {
	tb.Helper()
	s := &types.Session{
		PlayerID:              playerID,
		SelectedCue:           "ADDICTIVE_CUE",
		PhaseOrder:            "ADDICTIVE_CUE,MONETARY",
		ProbabilitySequenceID: "A",
		RatingSequenceID:      "B",
		StartTime:             startedAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func NewTrial(sessionID uint, playerID string, global int) *types.Trial {
	return &types.Trial{
		SessionID:         sessionID,
		PlayerID:          playerID,
		TrialNumberGlobal: global,
		TrialNumberPhase:  global,
		Phase:             "ADDICTIVE_CUE",
		WinningCueType:    String("ADDICTIVE_CUE"),
		LeftMachineProb:   0.75,
		RightMachineProb:  0.25,
		Choice:            String("left"),
		ResponseTimeMS:    Float64(512.5),
		Outcome:           String("WIN"),
		Timestamp:         time.Now().UTC(),
	}
}

func SeedTrial(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID uint, playerID string, global int) *types.Trial {
	tb.Helper()
	row := NewTrial(sessionID, playerID, global)
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed trial: %v", err)
	}
	return row
}
