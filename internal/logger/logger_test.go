package logger

import "testing"

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		json, debug bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	} {
		log, err := New(tc.json, tc.debug)
		if err != nil {
			t.Fatalf("json=%v debug=%v: unexpected error: %v", tc.json, tc.debug, err)
		}

		if got := log.Core().Enabled(-1); got != tc.debug {
			t.Fatalf("json=%v debug=%v: debug enabled = %v", tc.json, tc.debug, got)
		}
	}
}
