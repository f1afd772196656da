//nolint:funlen // ok for tests
package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

func TestAggregate_Empty(t *testing.T) {
	want := model.NeutralSummary()
	assert.Equal(t, want, Aggregate())
	assert.Equal(t, want, Aggregate(Lap{}))
}

func sampleLap() Lap {
	samples := make([]model.TelemetrySample, 10)
	for i := range samples {
		samples[i].Speed = 100
	}
	samples[0].YawRate = 5
	for i := 2; i < 8; i++ {
		samples[i].LateralG = 1.0
		samples[i].USOS = 3.0
	}
	for i := 8; i < 10; i++ {
		samples[i].LateralG = -1.0
		samples[i].USOS = 3.0
	}
	samples[4].SlipRatio[model.FL] = -0.2
	samples[6].SlipRatio[model.RL] = 0.3
	samples[6].SlipRatio[model.RR] = 0.1

	neutral := model.PhaseBalance{Balance: model.Neutral}
	return Lap{
		Samples: samples,
		Corners: []model.CornerPhases{
			{
				Event: model.CornerEvent{Start: 2, End: 8},
				Peak:  3,
				Entry: model.PhaseBalance{Balance: model.Understeer, Severity: 0.6},
				Apex:  neutral,
				Exit:  model.PhaseBalance{Balance: model.Oversteer, Severity: 0.5},
			},
			{
				Event: model.CornerEvent{Start: 8, End: 10},
				Peak:  0,
				Entry: neutral,
				Apex:  model.PhaseBalance{Balance: model.Understeer, Severity: 0.4},
				Exit:  neutral,
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate(sampleLap())

	assert.InDelta(t, 0.2, got.FrontUndersteer, 1e-9)
	assert.InDelta(t, 0.0, got.RearOversteer, 1e-9)
	assert.InDelta(t, 0.3, got.CornerEntryUndersteer, 1e-9)
	assert.InDelta(t, 0.25, got.CornerExitOversteer, 1e-9)
	assert.InDelta(t, 0.0, got.CornerEntryInstability, 1e-9)
	assert.InDelta(t, 0.025, got.RearWheelSlip, 1e-9)
	assert.InDelta(t, 0.5, got.FrontLockupFrequency, 1e-9)
	assert.InDelta(t, 0.8, got.CornerExitTraction, 1e-9)
	assert.InDelta(t, 0.1, got.FrontBrakeLockup, 1e-9)
	assert.InDelta(t, 0.0, got.RearBrakeLockup, 1e-9)
	assert.InDelta(t, 0.5, got.StraightLineInstability, 1e-9)
	assert.InDelta(t, 0.5, got.TireWearImbalance, 1e-9)
	assert.Equal(t, model.Understeer, got.OverallBalance)
}

func TestAggregate_MultipleLaps(t *testing.T) {
	lap := sampleLap()
	single := Aggregate(lap)
	double := Aggregate(lap, lap)
	// identical laps leave ratios and means unchanged
	assert.InDelta(t, single.FrontUndersteer, double.FrontUndersteer, 1e-9)
	assert.InDelta(t, single.CornerExitTraction, double.CornerExitTraction, 1e-9)
	assert.InDelta(t, single.FrontLockupFrequency, double.FrontLockupFrequency, 1e-9)
	assert.Equal(t, single.OverallBalance, double.OverallBalance)
}

func TestAggregate_MetricsInRange(t *testing.T) {
	got := Aggregate(sampleLap())
	for name, v := range map[string]float64{
		"front_understeer":          got.FrontUndersteer,
		"rear_oversteer":            got.RearOversteer,
		"rear_wheel_slip":           got.RearWheelSlip,
		"front_lockup_frequency":    got.FrontLockupFrequency,
		"corner_entry_understeer":   got.CornerEntryUndersteer,
		"corner_exit_oversteer":     got.CornerExitOversteer,
		"straight_line_instability": got.StraightLineInstability,
		"tire_wear_imbalance":       got.TireWearImbalance,
		"corner_entry_instability":  got.CornerEntryInstability,
		"corner_exit_traction":      got.CornerExitTraction,
		"front_brake_lockup":        got.FrontBrakeLockup,
		"rear_brake_lockup":         got.RearBrakeLockup,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}
