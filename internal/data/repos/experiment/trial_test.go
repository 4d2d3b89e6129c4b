package experiment

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/bandit-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bandit-backend/internal/domain"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
)

func TestTrialRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	session := testutil.SeedSession(t, ctx, tx, "p1", time.Now().UTC())
	repo := NewTrialRepo(db, testutil.Logger(t))

	for _, n := range []int{2, 1, 3} {
		if _, err := repo.Create(dbc, testutil.NewTrial(session.ID, "p1", n)); err != nil {
			t.Fatalf("Create(%d): %v", n, err)
		}
	}

	noResponse := testutil.NewTrial(session.ID, "p1", 4)
	noResponse.Choice = nil
	noResponse.ResponseTimeMS = nil
	noResponse.Outcome = nil
	if _, err := repo.Create(dbc, noResponse); err != nil {
		t.Fatalf("Create (nullable fields): %v", err)
	}

	got, err := repo.ListBySession(dbc, session.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("ListBySession: expected 4 trials, got %d", len(got))
	}
	for i, row := range got {
		if row.TrialNumberGlobal != i+1 {
			t.Fatalf("ListBySession: unexpected order at %d: %d", i, row.TrialNumberGlobal)
		}
		if row.SessionID != session.ID {
			t.Fatalf("ListBySession: wrong session id %d", row.SessionID)
		}
	}
	last := got[3]
	if last.Choice != nil || last.ResponseTimeMS != nil || last.Outcome != nil {
		t.Fatalf("nullable fields not preserved as NULL: %+v", last)
	}
	if got[0].Choice == nil || *got[0].Choice != "left" {
		t.Fatalf("choice not persisted: %+v", got[0])
	}
}

func TestRatingRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	session := testutil.SeedSession(t, ctx, tx, "p1", time.Now().UTC())
	repo := NewRatingRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, &types.Rating{
		SessionID:               session.ID,
		PlayerID:                "p1",
		TrialNumberBeforeRating: 10,
		RatingType:              types.RatingTypeCraving,
		RatingValue:             0,
		Timestamp:               time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create: expected generated id")
	}

	got, err := repo.ListBySession(dbc, session.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(got) != 1 || got[0].RatingType != types.RatingTypeCraving || got[0].RatingValue != 0 {
		t.Fatalf("ListBySession: unexpected result: %+v", got)
	}

	empty, err := repo.ListBySession(dbc, 0)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ListBySession(0): expected empty, got %+v, %v", empty, err)
	}
}
