// Package corner detects corner events in a lap and splits them into
// entry, apex and exit phases.
package corner

import (
	"errors"
	"fmt"
	"math"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

var ErrInvalidThresholds = errors.New("exit threshold must be below entry threshold")

// Thresholds on |lateral g|. Exit < Entry gives the hysteresis.
type Thresholds struct {
	Entry float64
	Exit  float64
}

var DefaultThresholds = Thresholds{Entry: 0.5, Exit: 0.3}

// UnclosedPolicy decides what happens with a corner still open at the end of the lap.
type UnclosedPolicy int

const (
	DropUnclosed UnclosedPolicy = iota
	TruncateUnclosed
)

func ParseUnclosedPolicy(s string) (UnclosedPolicy, error) {
	switch s {
	case "", "drop":
		return DropUnclosed, nil
	case "truncate":
		return TruncateUnclosed, nil
	default:
		return DropUnclosed, fmt.Errorf("unknown unclosed corner policy %q", s)
	}
}

type scanState int

const (
	outsideCorner scanState = iota
	insideCorner
)

type (
	SegmenterOption func(*Segmenter)
	Segmenter       struct {
		thresholds Thresholds
		unclosed   UnclosedPolicy
	}
)

func WithThresholds(th Thresholds) SegmenterOption {
	return func(s *Segmenter) {
		s.thresholds = th
	}
}

func WithUnclosedPolicy(p UnclosedPolicy) SegmenterOption {
	return func(s *Segmenter) {
		s.unclosed = p
	}
}

func NewSegmenter(opts ...SegmenterOption) (*Segmenter, error) {
	ret := &Segmenter{thresholds: DefaultThresholds, unclosed: DropUnclosed}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.thresholds.Exit >= ret.thresholds.Entry {
		return nil, fmt.Errorf("%w: entry=%v exit=%v",
			ErrInvalidThresholds, ret.thresholds.Entry, ret.thresholds.Exit)
	}
	return ret, nil
}

// Segment is a convenience for the default segmenter.
func Segment(samples []model.TelemetrySample) []model.CornerEvent {
	s := &Segmenter{thresholds: DefaultThresholds, unclosed: DropUnclosed}
	return s.Segment(samples)
}

func (s *Segmenter) Segment(samples []model.TelemetrySample) []model.CornerEvent {
	return s.SegmentTrace(len(samples), func(i int) float64 { return samples[i].LateralG })
}

// SegmentTrace scans the lateral g values at index 0..n-1 once and returns
// the closed corners [start,end) in temporal order.
func (s *Segmenter) SegmentTrace(n int, lateralG func(i int) float64) []model.CornerEvent {
	ret := []model.CornerEvent{}
	state := outsideCorner
	start := 0
	for i := range n {
		g := math.Abs(lateralG(i))
		switch state {
		case outsideCorner:
			if g > s.thresholds.Entry {
				state = insideCorner
				start = i
			}
		case insideCorner:
			if g < s.thresholds.Exit {
				ret = append(ret, model.CornerEvent{Start: start, End: i})
				state = outsideCorner
			}
		}
	}
	if state == insideCorner && s.unclosed == TruncateUnclosed {
		ret = append(ret, model.CornerEvent{Start: start, End: n, Truncated: true})
	}
	return ret
}
