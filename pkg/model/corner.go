package model

import "fmt"

type Balance string

const (
	Understeer Balance = "understeer"
	Oversteer  Balance = "oversteer"
	Neutral    Balance = "neutral"
)

type Phase int

const (
	PhaseEntry Phase = iota
	PhaseApex
	PhaseExit
)

func (p Phase) String() string {
	switch p {
	case PhaseEntry:
		return "entry"
	case PhaseApex:
		return "apex"
	case PhaseExit:
		return "exit"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PhaseBalance is the balance verdict of one corner phase.
type PhaseBalance struct {
	Balance       Balance `json:"balance" yaml:"balance"`
	Severity      float64 `json:"severity" yaml:"severity"` // 0..1
	AvgUSOS       float64 `json:"avgUsos" yaml:"avgUsos"`
	AvgYawDeficit float64 `json:"avgYawDeficit" yaml:"avgYawDeficit"`
	Samples       int     `json:"samples" yaml:"samples"`
}

// Window is a half open index range [Start,End) relative to a corner event.
type Window struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (w Window) Len() int {
	return w.End - w.Start
}

// CornerEvent references the samples [Start,End) of a lap.
type CornerEvent struct {
	Start     int  `json:"start" yaml:"start"`
	End       int  `json:"end" yaml:"end"`
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func (c CornerEvent) Len() int {
	return c.End - c.Start
}

// CornerPhases is a corner event after phase analysis.
type CornerPhases struct {
	Event CornerEvent  `json:"event" yaml:"event"`
	Peak  int          `json:"peak" yaml:"peak"` // relative to Event.Start
	Entry PhaseBalance `json:"entry" yaml:"entry"`
	Apex  PhaseBalance `json:"apex" yaml:"apex"`
	Exit  PhaseBalance `json:"exit" yaml:"exit"`
}

// ByPhase returns the balance of the given phase.
func (c *CornerPhases) ByPhase(p Phase) PhaseBalance {
	switch p {
	case PhaseEntry:
		return c.Entry
	case PhaseApex:
		return c.Apex
	default:
		return c.Exit
	}
}
