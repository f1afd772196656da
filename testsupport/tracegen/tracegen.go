// Package tracegen generates deterministic synthetic laps for tests and demos.
package tracegen

import (
	"math"

	"github.com/sergeyb2024/telemetry/pkg/kinematics"
	"github.com/sergeyb2024/telemetry/pkg/model"
)

const DefaultSampleInterval = 0.05 // seconds, 20 Hz

// Corner describes one synthetic corner. The lateral g follows a half sine
// wave reaching PeakG in the middle; the sign of PeakG is the direction.
type Corner struct {
	Samples int
	PeakG   float64
	Speed   float64 // km/h
	// SteerOffset is added to the kinematic steer angle in the cornering
	// direction. Positive values produce understeer, negative oversteer.
	SteerOffset float64
	// RearSlip is applied to the rear wheels from the peak on.
	RearSlip float64
}

// DemoCorners is an understeering left, an oversteering right and a neutral left.
var DemoCorners = []Corner{
	{Samples: 40, PeakG: 1.6, Speed: 110, SteerOffset: 3.0},
	{Samples: 30, PeakG: -1.4, Speed: 140, SteerOffset: -2.5, RearSlip: 0.2},
	{Samples: 50, PeakG: 1.2, Speed: 90, SteerOffset: 0.5},
}

type (
	Option    func(*Generator)
	Generator struct {
		kin           model.CarKinematics
		interval      float64
		straight      int
		straightSpeed float64
		corners       []Corner
	}
)

func WithKinematics(kin model.CarKinematics) Option {
	return func(g *Generator) {
		g.kin = kin
	}
}

func WithCorners(corners ...Corner) Option {
	return func(g *Generator) {
		g.corners = corners
	}
}

// WithStraight sets the number of samples and speed of the straights
// before, between and after the corners.
func WithStraight(samples int, speed float64) Option {
	return func(g *Generator) {
		g.straight = samples
		g.straightSpeed = speed
	}
}

func WithSampleInterval(seconds float64) Option {
	return func(g *Generator) {
		g.interval = seconds
	}
}

func New(opts ...Option) *Generator {
	ret := &Generator{
		kin:           model.CarKinematics{Wheelbase: 2.665},
		interval:      DefaultSampleInterval,
		straight:      60,
		straightSpeed: 220,
		corners:       DemoCorners,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// DemoLap returns the lap of a default generator.
func DemoLap() []model.TelemetrySample {
	return New().Lap()
}

// Lap returns the raw samples of a lap: straight, corner, straight, ..., straight.
func (g *Generator) Lap() []model.TelemetrySample {
	ret := make([]model.TelemetrySample, 0, g.Len())
	ret = g.appendStraight(ret)
	for _, c := range g.corners {
		ret = g.appendCorner(ret, c)
		ret = g.appendStraight(ret)
	}
	return ret
}

// Len is the number of samples Lap returns.
func (g *Generator) Len() int {
	n := g.straight * (len(g.corners) + 1)
	for _, c := range g.corners {
		n += c.Samples
	}
	return n
}

// CornerBounds returns the index range [start,end) of each generated corner.
func (g *Generator) CornerBounds() []model.CornerEvent {
	ret := make([]model.CornerEvent, 0, len(g.corners))
	idx := g.straight
	for _, c := range g.corners {
		ret = append(ret, model.CornerEvent{Start: idx, End: idx + c.Samples})
		idx += c.Samples + g.straight
	}
	return ret
}

func (g *Generator) appendStraight(samples []model.TelemetrySample) []model.TelemetrySample {
	v := kinematics.ToMetersPerSecond(g.straightSpeed)
	for range g.straight {
		samples = append(samples, model.TelemetrySample{
			Time:       g.nextTime(samples),
			Speed:      g.straightSpeed,
			WheelSpeed: [model.NumWheels]float64{v, v, v, v},
		})
	}
	return samples
}

func (g *Generator) appendCorner(samples []model.TelemetrySample, c Corner) []model.TelemetrySample {
	v := kinematics.ToMetersPerSecond(c.Speed)
	dir := math.Copysign(1, c.PeakG)
	for k := range c.Samples {
		latG := c.PeakG * math.Sin(math.Pi*(float64(k)+0.5)/float64(c.Samples))
		radius := kinematics.TurnRadius(v, latG)
		steer := kinematics.KinematicSteerDeg(g.kin.Wheelbase, radius) + dir*c.SteerOffset
		rear := v
		if k >= c.Samples/2 {
			rear = v * (1 + c.RearSlip)
		}
		samples = append(samples, model.TelemetrySample{
			Time:       g.nextTime(samples),
			Speed:      c.Speed,
			LateralG:   latG,
			SteerAngle: steer,
			YawRate:    kinematics.ExpectedYawRate(v, latG),
			WheelSpeed: [model.NumWheels]float64{v, v, rear, rear},
		})
	}
	return samples
}

func (g *Generator) nextTime(samples []model.TelemetrySample) float64 {
	return float64(len(samples)) * g.interval
}
