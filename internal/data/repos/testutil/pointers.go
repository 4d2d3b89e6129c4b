package testutil

func Int(v int) *int             { return &v }
func Bool(v bool) *bool          { return &v }
func Float64(v float64) *float64 { return &v }
func String(v string) *string    { return &v }
