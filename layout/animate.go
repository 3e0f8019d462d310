package layout

import "time"

// Stroke-draw animation timing. Lines start one after another with a fixed
// stagger; a later line may start while an earlier one is still drawing.
const (
	LineDelayStep = 800 * time.Millisecond
	LineDuration  = 1500 * time.Millisecond
)

// NewAnimationSpec schedules line index to start at index × LineDelayStep.
// PathLength is the dash length the renderer animates from, the sum of the
// line's outline lengths.
func NewAnimationSpec(index int, pathLength float64) AnimationSpec {
	return AnimationSpec{
		LineIndex:  index,
		Delay:      time.Duration(index) * LineDelayStep,
		Duration:   LineDuration,
		PathLength: pathLength,
	}
}
