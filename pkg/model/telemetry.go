package model

// Wheel indexes the per-wheel arrays of a sample.
type Wheel int

const (
	FL Wheel = iota
	FR
	RL
	RR
	NumWheels
)

var wheelNames = [NumWheels]string{"FL", "FR", "RL", "RR"}

func (w Wheel) String() string {
	if w < 0 || w >= NumWheels {
		return "unknown"
	}
	return wheelNames[w]
}

// Wheels lists all wheels in array order.
var Wheels = []Wheel{FL, FR, RL, RR}

// TelemetrySample is one timestamp-ordered telemetry record.
// Raw fields are filled by the decoder, derived fields by channel derivation.
type TelemetrySample struct {
	Time       float64            `json:"time"`       // seconds
	Speed      float64            `json:"speed"`      // km/h
	LateralG   float64            `json:"lateralG"`   // g
	SteerAngle float64            `json:"steerAngle"` // degrees
	YawRate    float64            `json:"yawRate"`    // degrees/s
	WheelSpeed [NumWheels]float64 `json:"wheelSpeed"` // raw unit speed

	// derived
	USOS      float64            `json:"usos"`
	SlipRatio [NumWheels]float64 `json:"slipRatio"`
	Yaw       YawAnalysis        `json:"yaw"`
}

// YawAnalysis compares actual yaw rate with the kinematic expectation.
// All fields are 0 if the sample was outside the analysis window.
type YawAnalysis struct {
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Deficit  float64 `json:"deficit"`
}

// CarKinematics holds the constant car parameters used by the converters.
type CarKinematics struct {
	Wheelbase float64 `json:"wheelbase" yaml:"wheelbase"` // meters
}
