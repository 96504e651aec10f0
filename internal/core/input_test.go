package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.String() != "none" {
		t.Fatalf("zero frame = %q, expected empty", f.String())
	}

	f.Set(ActionConfirm)
	f.Set(ActionUp)
	f.Set(ActionUp)
	f.Set(ActionNone)

	if !f.Has(ActionUp) || !f.Has(ActionConfirm) {
		t.Error("pressed actions missing")
	}
	if f.Has(ActionHint) || f.Has(ActionNone) {
		t.Error("unpressed action reported")
	}
	if got := f.String(); got != "up+confirm" {
		t.Errorf("String() = %q, expected %q", got, "up+confirm")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear() left actions pressed")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "none"},
		{ActionShuffle, "shuffle"},
		{ActionPause, "pause"},
		{Action(200), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.want)
		}
	}
}
