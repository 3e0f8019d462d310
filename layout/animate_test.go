package layout

import (
	"testing"
	"time"
)

// The schedule is a pure function of the line index; adjacent delays differ
// by exactly one step and draw intervals of neighboring lines overlap.
func TestNewAnimationSpec(t *testing.T) {
	for i := 0; i < 5; i++ {
		spec := NewAnimationSpec(i, 42.5)
		if spec.LineIndex != i {
			t.Errorf("index = %d, want %d", spec.LineIndex, i)
		}
		if spec.Delay != time.Duration(i)*LineDelayStep {
			t.Errorf("delay = %v, want %v", spec.Delay, time.Duration(i)*LineDelayStep)
		}
		if spec.Duration != LineDuration {
			t.Errorf("duration = %v, want %v", spec.Duration, LineDuration)
		}
		if spec.PathLength != 42.5 {
			t.Errorf("path length = %v, want 42.5", spec.PathLength)
		}
	}

	prev := NewAnimationSpec(0, 0)
	next := NewAnimationSpec(1, 0)
	if next.Delay-prev.Delay != LineDelayStep {
		t.Errorf("delay step = %v, want %v", next.Delay-prev.Delay, LineDelayStep)
	}
	if next.Delay >= prev.Delay+prev.Duration {
		t.Error("adjacent draw intervals should overlap")
	}
}
