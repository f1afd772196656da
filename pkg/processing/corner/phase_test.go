//nolint:funlen,lll // ok for tests
package corner

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		name         string
		avg          float64
		wantBalance  model.Balance
		wantSeverity float64
	}{
		{"understeer", 3.0, model.Understeer, 0.6},
		{"understeer capped", 7.5, model.Understeer, 1.0},
		{"oversteer", -2.0, model.Oversteer, 2.0 / 3.0},
		{"oversteer capped", -4.0, model.Oversteer, 1.0},
		{"neutral", 0.5, model.Neutral, 0},
		{"upper boundary is neutral", 2.0, model.Neutral, 0},
		{"lower boundary is neutral", -1.0, model.Neutral, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, s := ClassifyPhase(tt.avg)
			assert.Equal(t, tt.wantBalance, b)
			assert.InDelta(t, tt.wantSeverity, s, 1e-9)
		})
	}
}

func TestPhaseWindows(t *testing.T) {
	tests := []struct {
		name      string
		n, peak   int
		wantEntry model.Window
		wantApex  model.Window
		wantExit  model.Window
	}{
		{"peak in the middle", 10, 5, model.Window{0, 5}, model.Window{3, 8}, model.Window{5, 10}},
		{"peak at start", 10, 0, model.Window{0, 0}, model.Window{0, 1}, model.Window{0, 10}},
		{"peak at index 2", 10, 2, model.Window{0, 2}, model.Window{2, 3}, model.Window{2, 10}},
		{"peak at index 3", 10, 3, model.Window{0, 3}, model.Window{1, 6}, model.Window{3, 10}},
		{"peak at end clamps apex", 10, 9, model.Window{0, 9}, model.Window{7, 10}, model.Window{9, 10}},
		{"single sample", 1, 0, model.Window{0, 0}, model.Window{0, 1}, model.Window{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, apex, exit := PhaseWindows(tt.n, tt.peak)
			assert.Equal(t, tt.wantEntry, entry, "entry")
			assert.Equal(t, tt.wantApex, apex, "apex")
			assert.Equal(t, tt.wantExit, exit, "exit")
		})
	}
}

func TestPeakIndex_FirstOnTie(t *testing.T) {
	samples := []model.TelemetrySample{{LateralG: 0.6}, {LateralG: -1.4}, {LateralG: 1.4}, {LateralG: 0.9}}
	assert.Equal(t, 1, PeakIndex(samples))
	assert.Equal(t, -1, PeakIndex(nil))
}

func TestSummarizeWindow(t *testing.T) {
	assert.Equal(t, model.PhaseBalance{Balance: model.Neutral}, SummarizeWindow(nil))

	window := []model.TelemetrySample{
		{USOS: 2.0, Yaw: model.YawAnalysis{Deficit: -1}},
		{USOS: 4.0, Yaw: model.YawAnalysis{Deficit: -3}},
	}
	got := SummarizeWindow(window)
	assert.Equal(t, model.Understeer, got.Balance)
	assert.InDelta(t, 0.6, got.Severity, 1e-9)
	assert.InDelta(t, 3.0, got.AvgUSOS, 1e-9)
	assert.InDelta(t, -2.0, got.AvgYawDeficit, 1e-9)
	assert.Equal(t, 2, got.Samples)
}

func TestSummarizeWindow_YawDeficitIgnoredForBalance(t *testing.T) {
	window := []model.TelemetrySample{{USOS: 0.5, Yaw: model.YawAnalysis{Deficit: 25}}}
	got := SummarizeWindow(window)
	assert.Equal(t, model.Neutral, got.Balance)
	assert.Equal(t, 0.0, got.Severity)
}

// corner of 10 samples with the peak at relative index 5
func tenSampleCorner() ([]model.TelemetrySample, model.CornerEvent) {
	samples := make([]model.TelemetrySample, 20)
	for i := range samples {
		samples[i].LateralG = 0.1
	}
	usos := []float64{3, 3, 3, 3, 3, -2, -2, -2, -2, -2}
	latG := []float64{0.6, 0.8, 1.0, 1.2, 1.4, 1.6, 1.3, 1.0, 0.8, 0.6}
	for i := range 10 {
		samples[5+i].LateralG = latG[i]
		samples[5+i].USOS = usos[i]
	}
	return samples, model.CornerEvent{Start: 5, End: 15}
}

func TestAnalyzePhases(t *testing.T) {
	samples, ev := tenSampleCorner()
	got := AnalyzePhases(samples, ev)

	assert.Equal(t, 5, got.Peak)
	assert.Equal(t, ev, got.Event)
	// entry [0,5): all 3.0
	assert.Equal(t, model.Understeer, got.Entry.Balance)
	assert.InDelta(t, 0.6, got.Entry.Severity, 1e-9)
	assert.Equal(t, 5, got.Entry.Samples)
	// apex [3,8): 3,3,-2,-2,-2 => -0.6
	assert.Equal(t, model.Neutral, got.Apex.Balance)
	assert.InDelta(t, -0.6, got.Apex.AvgUSOS, 1e-9)
	assert.Equal(t, 5, got.Apex.Samples)
	// exit [5,10): all -2.0
	assert.Equal(t, model.Oversteer, got.Exit.Balance)
	assert.InDelta(t, 2.0/3.0, got.Exit.Severity, 1e-9)
	assert.Equal(t, got.Exit, got.ByPhase(model.PhaseExit))
}

func TestAnalyzeAll(t *testing.T) {
	samples, ev := tenSampleCorner()
	events := []model.CornerEvent{ev, {Start: 0, End: 5}, ev}
	got, err := AnalyzeAll(context.Background(), samples, events, 2)
	assert.NoError(t, err)
	want := []model.CornerPhases{
		AnalyzePhases(samples, events[0]),
		AnalyzePhases(samples, events[1]),
		AnalyzePhases(samples, events[2]),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnalyzeAll() mismatch (-want +got):\n%s", diff)
	}
}
