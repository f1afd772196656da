package summary

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/processing/corner"
)

const (
	GradientMinLateralG = 0.8 // samples used for the understeer gradient
	GradientMinPoints   = 10
	BalancedUSOSMin     = 1.0
	BalancedUSOSMax     = 1.5
)

// CornerRow is one line of the corner table.
type CornerRow struct {
	Number      int           `json:"number" yaml:"number"`
	Start       int           `json:"start" yaml:"start"`
	End         int           `json:"end" yaml:"end"`
	Duration    float64       `json:"duration" yaml:"duration"` // seconds
	AvgUSOS     float64       `json:"avgUsos" yaml:"avgUsos"`
	MaxLateralG float64       `json:"maxLateralG" yaml:"maxLateralG"`
	Balance     model.Balance `json:"balance" yaml:"balance"`
}

// LapStats contains the per lap key figures.
type LapStats struct {
	Samples            int         `json:"samples" yaml:"samples"`
	UndersteerGradient float64     `json:"understeerGradient" yaml:"understeerGradient"` // deg/g
	PeakLateralG       float64     `json:"peakLateralG" yaml:"peakLateralG"`
	AvgSpeed           float64     `json:"avgSpeed" yaml:"avgSpeed"` // km/h
	BalanceFactor      float64     `json:"balanceFactor" yaml:"balanceFactor"`
	Corners            []CornerRow `json:"corners" yaml:"corners"`
}

// ComputeLapStats computes the key figures of a derived lap.
// Empty input yields zero values.
//
//nolint:whitespace // can't make both editor and linter happy
func ComputeLapStats(
	samples []model.TelemetrySample,
	corners []model.CornerPhases,
) LapStats {
	ret := LapStats{Samples: len(samples), Corners: []CornerRow{}}
	if len(samples) == 0 {
		return ret
	}
	absLat := lo.Map(samples, func(s model.TelemetrySample, _ int) float64 {
		return math.Abs(s.LateralG)
	})
	ret.PeakLateralG = floats.Max(absLat)
	ret.AvgSpeed = stat.Mean(lo.Map(samples, func(s model.TelemetrySample, _ int) float64 {
		return s.Speed
	}), nil)
	balanced := lo.CountBy(samples, func(s model.TelemetrySample) bool {
		a := math.Abs(s.USOS)
		return a >= BalancedUSOSMin && a <= BalancedUSOSMax
	})
	ret.BalanceFactor = float64(balanced) / float64(len(samples))
	ret.UndersteerGradient = UndersteerGradient(samples)
	for i := range corners {
		ret.Corners = append(ret.Corners, cornerRow(samples, i+1, corners[i].Event))
	}
	return ret
}

// UndersteerGradient is the slope of |steer| over |lateral g| for samples
// above GradientMinLateralG. Returns 0 if there are fewer than
// GradientMinPoints such samples or the regression is degenerate.
func UndersteerGradient(samples []model.TelemetrySample) float64 {
	var x, y []float64
	for i := range samples {
		if g := math.Abs(samples[i].LateralG); g > GradientMinLateralG {
			x = append(x, g)
			y = append(y, math.Abs(samples[i].SteerAngle))
		}
	}
	if len(x) < GradientMinPoints {
		return 0
	}
	_, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0
	}
	return beta
}

func cornerRow(samples []model.TelemetrySample, num int, ev model.CornerEvent) CornerRow {
	data := samples[ev.Start:ev.End]
	ret := CornerRow{Number: num, Start: ev.Start, End: ev.End}
	ret.AvgUSOS = lo.MeanBy(data, func(s model.TelemetrySample) float64 { return s.USOS })
	ret.MaxLateralG = lo.Max(lo.Map(data, func(s model.TelemetrySample, _ int) float64 {
		return math.Abs(s.LateralG)
	}))
	end := ev.End
	if end >= len(samples) {
		end = len(samples) - 1
	}
	ret.Duration = samples[end].Time - samples[ev.Start].Time
	ret.Balance, _ = corner.ClassifyPhase(ret.AvgUSOS)
	return ret
}
