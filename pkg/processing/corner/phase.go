package corner

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

const (
	UndersteerThreshold = 2.0  // avg USOS above is understeer
	OversteerThreshold  = -1.0 // avg USOS below is oversteer
	understeerScale     = 5.0
	oversteerScale      = 3.0
	apexHalfWidth       = 2
)

// ClassifyPhase maps an average USOS onto a balance verdict with severity in [0,1].
// The yaw deficit is intentionally not part of the decision.
func ClassifyPhase(avgUSOS float64) (model.Balance, float64) {
	switch {
	case avgUSOS > UndersteerThreshold:
		return model.Understeer, math.Min(avgUSOS/understeerScale, 1.0)
	case avgUSOS < OversteerThreshold:
		return model.Oversteer, math.Min(math.Abs(avgUSOS)/oversteerScale, 1.0)
	default:
		return model.Neutral, 0
	}
}

// SummarizeWindow averages USOS and yaw deficit of the window and classifies it.
// An empty window is neutral.
func SummarizeWindow(window []model.TelemetrySample) model.PhaseBalance {
	if len(window) == 0 {
		return model.PhaseBalance{Balance: model.Neutral}
	}
	var sumUSOS, sumYaw float64
	for i := range window {
		sumUSOS += window[i].USOS
		sumYaw += window[i].Yaw.Deficit
	}
	n := float64(len(window))
	ret := model.PhaseBalance{
		AvgUSOS:       sumUSOS / n,
		AvgYawDeficit: sumYaw / n,
		Samples:       len(window),
	}
	ret.Balance, ret.Severity = ClassifyPhase(ret.AvgUSOS)
	return ret
}

// PeakIndex returns the index of the maximum |lateral g|, first one on ties.
// Returns -1 for an empty slice.
func PeakIndex(samples []model.TelemetrySample) int {
	peak := -1
	maxG := math.Inf(-1)
	for i := range samples {
		if g := math.Abs(samples[i].LateralG); g > maxG {
			maxG = g
			peak = i
		}
	}
	return peak
}

// PhaseWindows returns the entry, apex and exit windows relative to a corner of
// n samples with the peak at index peak.
// entry=[0,peak) exit=[peak,n) apex=[peak-2,peak+3) clamped;
// apex is the peak sample alone if peak <= 2.
func PhaseWindows(n, peak int) (entry, apex, exit model.Window) {
	entry = model.Window{Start: 0, End: peak}
	exit = model.Window{Start: peak, End: n}
	if peak > apexHalfWidth {
		apex = model.Window{Start: peak - apexHalfWidth, End: min(peak+apexHalfWidth+1, n)}
	} else {
		apex = model.Window{Start: peak, End: peak + 1}
	}
	return entry, apex, exit
}

// AnalyzePhases splits the event into phases and classifies each of them.
func AnalyzePhases(samples []model.TelemetrySample, ev model.CornerEvent) model.CornerPhases {
	data := samples[ev.Start:ev.End]
	ret := model.CornerPhases{Event: ev}
	peak := PeakIndex(data)
	if peak < 0 {
		neutral := model.PhaseBalance{Balance: model.Neutral}
		ret.Entry, ret.Apex, ret.Exit = neutral, neutral, neutral
		return ret
	}
	entry, apex, exit := PhaseWindows(len(data), peak)
	ret.Peak = peak
	ret.Entry = SummarizeWindow(data[entry.Start:entry.End])
	ret.Apex = SummarizeWindow(data[apex.Start:apex.End])
	ret.Exit = SummarizeWindow(data[exit.Start:exit.End])
	return ret
}

// AnalyzeAll analyzes the events concurrently. The result keeps the event order.
//
//nolint:whitespace // can't make both editor and linter happy
func AnalyzeAll(
	ctx context.Context,
	samples []model.TelemetrySample,
	events []model.CornerEvent,
	workers int,
) ([]model.CornerPhases, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ret := make([]model.CornerPhases, len(events))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range events {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ret[i] = AnalyzePhases(samples, events[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
