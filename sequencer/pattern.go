package sequencer

// Grid dimensions. Fixed and identical across all parts of a sequence.
const (
	NumPads      = 16
	StepsPerPart = 16
	StepsPerBeat = 4 // 16th-note grid
	MaxParts     = 8
	DefaultParts = 4
)

// Tempo and swing bounds. Enforced at the command boundary so the render
// context never sees an invalid value.
const (
	MinTempo = 1
	MaxTempo = 500
	MaxSwing = 99

	DefaultTempo    = 120
	DefaultVelocity = 100
)

// Step is one time slot of one pad: a hit flag plus velocity.
type Step struct {
	Hit      bool  `json:"hit"`
	Velocity uint8 `json:"velocity"`
}

// Part is one 16-step section: a pad x step grid of Steps.
type Part struct {
	Steps [NumPads][StepsPerPart]Step `json:"steps"`
}

// HasContent reports whether any step in the part is active.
func (p *Part) HasContent() bool {
	for pad := 0; pad < NumPads; pad++ {
		for s := 0; s < StepsPerPart; s++ {
			if p.Steps[pad][s].Hit {
				return true
			}
		}
	}
	return false
}

// Pattern is the full data model of one sequence: an ordered list of
// parts plus global tempo and swing. It is a plain value; the control
// context owns the canonical copy and the render context owns its own,
// kept in sync by commands only.
type Pattern struct {
	Tempo     int // beats per minute
	Swing     int // percent, 0-99
	PartCount int // active parts, 1..MaxParts
	Parts     [MaxParts]Part
}

// NewPattern returns a pattern with default tempo, no hits and
// default-velocity steps.
func NewPattern() Pattern {
	p := Pattern{Tempo: DefaultTempo, PartCount: DefaultParts}
	for i := range p.Parts {
		for pad := 0; pad < NumPads; pad++ {
			for s := 0; s < StepsPerPart; s++ {
				p.Parts[i].Steps[pad][s] = Step{Velocity: DefaultVelocity}
			}
		}
	}
	return p
}

// ValidCell reports whether (part, pad, step) addresses a cell inside
// the active grid.
func (p Pattern) ValidCell(part, pad, step int) bool {
	return part >= 0 && part < p.PartCount &&
		pad >= 0 && pad < NumPads &&
		step >= 0 && step < StepsPerPart
}

// StepAt returns the cell, or a zero Step if out of range.
func (p Pattern) StepAt(part, pad, step int) Step {
	if !p.ValidCell(part, pad, step) {
		return Step{}
	}
	return p.Parts[part].Steps[pad][step]
}

// SetStep writes one cell with absolute state. Out-of-range indices are
// ignored.
func (p *Pattern) SetStep(part, pad, step int, hit bool, velocity uint8) {
	if !p.ValidCell(part, pad, step) {
		return
	}
	p.Parts[part].Steps[pad][step] = Step{Hit: hit, Velocity: velocity}
}

// ClampTempo clamps a BPM value into [MinTempo, MaxTempo].
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// ClampSwing clamps a swing percentage into [0, MaxSwing].
func ClampSwing(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > MaxSwing {
		return MaxSwing
	}
	return pct
}

// ClampPartCount clamps a part count into [1, MaxParts].
func ClampPartCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxParts {
		return MaxParts
	}
	return n
}
