// Package channels computes the per sample derived channels USOS, slip ratio
// and yaw deficit. Samples are independent of each other.
package channels

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/kinematics"
	"github.com/sergeyb2024/telemetry/pkg/model"
)

const (
	USOSMinLateralG = 0.3  // g, no cornering signal below
	USOSMinSpeed    = 5.0  // m/s, turn radius degenerates below
	SlipMinSpeed    = 5.0  // m/s
	YawMinLateralG  = 0.2  // g
	YawMinSpeed     = 20.0 // m/s

	defaultChunkSize = 4096
)

type (
	Option  func(*options)
	options struct {
		workers   int
		chunkSize int
		l         *log.Logger
	}
)

func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.l = l
	}
}

// USOS returns the understeer/oversteer signed metric of s.
// Positive values indicate understeer, negative oversteer.
// The result is 0 at or below USOSMinLateralG or USOSMinSpeed and never NaN/Inf.
func USOS(s *model.TelemetrySample, kin model.CarKinematics) float64 {
	latG := s.LateralG
	if math.Abs(latG) <= USOSMinLateralG {
		return 0
	}
	speed := kinematics.ToMetersPerSecond(s.Speed)
	if speed <= USOSMinSpeed {
		return 0
	}
	radius := kinematics.TurnRadius(speed, latG)
	raw := s.SteerAngle - kinematics.KinematicSteerDeg(kin.Wheelbase, radius)
	// sign correction and lateral-g weighting
	ret := raw * (latG / math.Abs(latG)) * math.Abs(latG)
	if math.IsNaN(ret) || math.IsInf(ret, 0) {
		return 0
	}
	return ret
}

// SlipRatios returns (wheel - v) / v per wheel. All 0 at or below SlipMinSpeed.
func SlipRatios(s *model.TelemetrySample) [model.NumWheels]float64 {
	var ret [model.NumWheels]float64
	speed := kinematics.ToMetersPerSecond(s.Speed)
	if speed <= SlipMinSpeed {
		return ret
	}
	for _, w := range model.Wheels {
		ret[w] = (s.WheelSpeed[w] - speed) / speed
	}
	return ret
}

// Yaw compares the actual yaw rate with the kinematic expectation.
func Yaw(s *model.TelemetrySample) model.YawAnalysis {
	speed := kinematics.ToMetersPerSecond(s.Speed)
	if math.Abs(s.LateralG) <= YawMinLateralG || speed <= YawMinSpeed {
		return model.YawAnalysis{}
	}
	expected := kinematics.ExpectedYawRate(speed, s.LateralG)
	return model.YawAnalysis{
		Expected: expected,
		Actual:   s.YawRate,
		Deficit:  s.YawRate - expected,
	}
}

// DeriveSample returns a copy of s with all derived channels set.
func DeriveSample(s model.TelemetrySample, kin model.CarKinematics) model.TelemetrySample {
	s.USOS = USOS(&s, kin)
	s.SlipRatio = SlipRatios(&s)
	s.Yaw = Yaw(&s)
	return s
}

// Derive computes the derived channels for all samples. The input is not modified,
// the result has the same order as the input.
// Chunks are processed in parallel; ctx is checked before each chunk.
//
//nolint:whitespace // can't make both editor and linter happy
func Derive(
	ctx context.Context,
	samples []model.TelemetrySample,
	kin model.CarKinematics,
	opts ...Option,
) ([]model.TelemetrySample, error) {
	o := &options{
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: defaultChunkSize,
		l:         log.GetFromContext(ctx).Named("channels"),
	}
	for _, opt := range opts {
		opt(o)
	}

	ret := make([]model.TelemetrySample, len(samples))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	chunks := 0
	for start := 0; start < len(samples); start += o.chunkSize {
		end := min(start+o.chunkSize, len(samples))
		chunks++
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				ret[i] = DeriveSample(samples[i], kin)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	o.l.Debug("derived channels",
		log.Int("samples", len(samples)),
		log.Int("chunks", chunks),
		log.Int("workers", o.workers))
	return ret, nil
}
