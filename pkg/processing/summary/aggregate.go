// Package summary condenses analyzed laps into the fixed analysis summary
// consumed by the recommendation engine and computes lap statistics.
package summary

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/sergeyb2024/telemetry/pkg/kinematics"
	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/processing/corner"
)

const (
	LockupSlip          = -0.15 // wheel slower than the car by more than 15%
	TractionLossSlip    = 0.1   // driven wheel faster than the car by more than 10%
	StraightMaxLateralG = 0.3
	StraightMinSpeed    = 20.0 // m/s
	StraightMaxYawRate  = 3.0  // deg/s
)

// Lap is a derived lap together with its analyzed corners.
type Lap struct {
	Samples []model.TelemetrySample
	Corners []model.CornerPhases
}

// Aggregate computes the analysis summary over all given laps.
// Without corners all corner related metrics are 0, the exit traction is 1
// and the balance is neutral.
func Aggregate(laps ...Lap) model.AnalysisSummary {
	ret := model.NeutralSummary()
	var (
		corners       []model.CornerPhases
		cornerUSOS    []float64
		rearSlip      []float64
		exitSamples   int
		exitSlipping  int
		allSamples    int
		frontLockups  int
		rearLockups   int
		straights     int
		unstable      int
		leftLoad      float64
		rightLoad     float64
		frontLockCorn int
	)
	for _, lap := range laps {
		corners = append(corners, lap.Corners...)
		for i := range lap.Samples {
			s := &lap.Samples[i]
			allSamples++
			if min(s.SlipRatio[model.FL], s.SlipRatio[model.FR]) < LockupSlip {
				frontLockups++
			}
			if min(s.SlipRatio[model.RL], s.SlipRatio[model.RR]) < LockupSlip {
				rearLockups++
			}
			if math.Abs(s.LateralG) <= StraightMaxLateralG &&
				kinematics.ToMetersPerSecond(s.Speed) > StraightMinSpeed {
				straights++
				if math.Abs(s.YawRate) > StraightMaxYawRate {
					unstable++
				}
			}
		}
		for _, c := range lap.Corners {
			data := lap.Samples[c.Event.Start:c.Event.End]
			locked := false
			for i := range data {
				cornerUSOS = append(cornerUSOS, data[i].USOS)
				rearSlip = append(rearSlip,
					math.Max(0, (data[i].SlipRatio[model.RL]+data[i].SlipRatio[model.RR])/2))
				if data[i].LateralG > 0 {
					leftLoad += data[i].LateralG
				} else {
					rightLoad -= data[i].LateralG
				}
				if min(data[i].SlipRatio[model.FL], data[i].SlipRatio[model.FR]) < LockupSlip {
					locked = true
				}
				if i >= c.Peak {
					exitSamples++
					if max(data[i].SlipRatio[model.RL], data[i].SlipRatio[model.RR]) > TractionLossSlip {
						exitSlipping++
					}
				}
			}
			if locked {
				frontLockCorn++
			}
		}
	}

	ret.FrontUndersteer = meanSeverity(corners, model.PhaseApex, model.Understeer)
	ret.RearOversteer = meanSeverity(corners, model.PhaseApex, model.Oversteer)
	ret.CornerEntryUndersteer = meanSeverity(corners, model.PhaseEntry, model.Understeer)
	ret.CornerExitOversteer = meanSeverity(corners, model.PhaseExit, model.Oversteer)
	ret.CornerEntryInstability = meanSeverity(corners, model.PhaseEntry, model.Oversteer)
	if len(rearSlip) > 0 {
		ret.RearWheelSlip = clamp01(stat.Mean(rearSlip, nil))
	}
	if len(corners) > 0 {
		ret.FrontLockupFrequency = float64(frontLockCorn) / float64(len(corners))
	}
	if exitSamples > 0 {
		ret.CornerExitTraction = 1 - float64(exitSlipping)/float64(exitSamples)
	}
	if allSamples > 0 {
		ret.FrontBrakeLockup = float64(frontLockups) / float64(allSamples)
		ret.RearBrakeLockup = float64(rearLockups) / float64(allSamples)
	}
	if straights > 0 {
		ret.StraightLineInstability = float64(unstable) / float64(straights)
	}
	if total := leftLoad + rightLoad; total > 0 {
		ret.TireWearImbalance = math.Abs(leftLoad-rightLoad) / total
	}
	if len(cornerUSOS) > 0 {
		ret.OverallBalance, _ = corner.ClassifyPhase(stat.Mean(cornerUSOS, nil))
	}
	return ret
}

// meanSeverity averages the severity of the phase over all corners, counting
// corners with a different verdict as 0.
func meanSeverity(corners []model.CornerPhases, p model.Phase, b model.Balance) float64 {
	if len(corners) == 0 {
		return 0
	}
	return lo.MeanBy(corners, func(c model.CornerPhases) float64 {
		pb := c.ByPhase(p)
		if pb.Balance != b {
			return 0
		}
		return pb.Severity
	})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
