package ctxutil

import "context"

type traceDataKey struct{}

// TraceData is attached once per request and filled in as the request is handled.
type TraceData struct {
	TraceID   string
	RequestID string
	// PlayerID is known from the route for closes and from the body for everything else.
	PlayerID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// RequestID returns the request id attached by the trace middleware, or "".
func RequestID(ctx context.Context) string {
	if td := GetTraceData(ctx); td != nil {
		return td.RequestID
	}
	return ""
}

// SetPlayerID records the player a request acts for. No-op without trace data.
func SetPlayerID(ctx context.Context, playerID string) {
	if td := GetTraceData(ctx); td != nil && playerID != "" {
		td.PlayerID = playerID
	}
}
