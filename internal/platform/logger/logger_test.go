package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsHashesPlayerID(t *testing.T) {
	if !redactionOn() {
		t.Skip("redaction disabled via LOG_REDACTION_ENABLED")
	}
	out := sanitizeKVs([]interface{}{"player_id", "p1", "route", "/api/trials/", "api_key", "abc"})
	if len(out) != 6 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	hashed, _ := out[1].(string)
	if !strings.HasPrefix(hashed, "hash:") || hashed == "hash:" {
		t.Fatalf("player_id not hashed: %v", out[1])
	}
	if out[3] != "/api/trials/" {
		t.Fatalf("route altered: %v", out[3])
	}
	if out[5] != "[REDACTED]" {
		t.Fatalf("api_key not redacted: %v", out[5])
	}
	again := sanitizeKVs([]interface{}{"player_id", "p1"})
	if again[1] != out[1] {
		t.Fatalf("hash not stable: %v vs %v", again[1], out[1])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 200, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected: %#v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "player_id", "p1")
	}
}
