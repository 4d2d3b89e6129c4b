package ctxutil

import (
	"context"
	"testing"
)

func TestSetPlayerID(t *testing.T) {
	SetPlayerID(context.Background(), "p1")

	td := &TraceData{RequestID: "r1"}
	ctx := WithTraceData(context.Background(), td)
	SetPlayerID(ctx, "")
	if td.PlayerID != "" {
		t.Fatalf("blank id should not overwrite: %q", td.PlayerID)
	}
	SetPlayerID(ctx, "p1")
	if got := GetTraceData(ctx).PlayerID; got != "p1" {
		t.Fatalf("got %q", got)
	}
	if RequestID(ctx) != "r1" {
		t.Fatalf("request id lost")
	}
}
