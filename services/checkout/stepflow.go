package checkout

// StepFlow tracks the position in a linear multi-step flow. Steps are 1-based.
type StepFlow struct {
	Current int
	Max     int
}

func NewStepFlow(current, max int) StepFlow {
	return StepFlow{Current: clamp(current, 1, max), Max: max}
}

// Advance moves one step forward, never past Max.
func (f StepFlow) Advance() StepFlow {
	return StepFlow{Current: clamp(f.Current+1, 1, f.Max), Max: f.Max}
}

// Retreat moves one step back, never before the first step.
func (f StepFlow) Retreat() StepFlow {
	return StepFlow{Current: clamp(f.Current-1, 1, f.Max), Max: f.Max}
}

// Jump moves directly to step, clamped into range.
func (f StepFlow) Jump(step int) StepFlow {
	return StepFlow{Current: clamp(step, 1, f.Max), Max: f.Max}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
