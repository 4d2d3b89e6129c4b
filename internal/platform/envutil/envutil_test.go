package envutil

import (
	"reflect"
	"testing"
)

func TestCSV(t *testing.T) {
	def := []string{"http://localhost:8080"}

	t.Setenv("TEST_ORIGINS", "")
	if got := CSV("TEST_ORIGINS", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("empty: got=%v", got)
	}

	t.Setenv("TEST_ORIGINS", " http://a.test , ,null,")
	want := []string{"http://a.test", "null"}
	if got := CSV("TEST_ORIGINS", def); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestIntAndBool(t *testing.T) {
	t.Setenv("TEST_PORT", "9001")
	if got := Int("TEST_PORT", 8000, nil); got != 9001 {
		t.Fatalf("Int: got=%d", got)
	}
	t.Setenv("TEST_PORT", "not-a-number")
	if got := Int("TEST_PORT", 8000, nil); got != 8000 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	t.Setenv("TEST_FLAG", "on")
	if !Bool("TEST_FLAG", false) {
		t.Fatalf("Bool: expected true")
	}
	t.Setenv("TEST_FLAG", "maybe")
	if Bool("TEST_FLAG", false) {
		t.Fatalf("Bool fallback: expected false")
	}
}

func TestStringDefault(t *testing.T) {
	t.Setenv("TEST_DRIVER", "  ")
	if got := String("TEST_DRIVER", "sqlite", nil); got != "sqlite" {
		t.Fatalf("got=%q", got)
	}
	t.Setenv("TEST_DRIVER", "postgres")
	if got := String("TEST_DRIVER", "sqlite", nil); got != "postgres" {
		t.Fatalf("got=%q", got)
	}
}
