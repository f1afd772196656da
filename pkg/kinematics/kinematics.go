// Package kinematics provides unit conversions and kinematic (Ackermann)
// reference values for cornering.
package kinematics

import "math"

const (
	Gravity  = 9.81     // m/s²
	KphToMps = 0.277778 // km/h -> m/s
)

// ToMetersPerSecond converts km/h to m/s.
func ToMetersPerSecond(kph float64) float64 {
	return kph * KphToMps
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// TurnRadius returns the radius in meters of the circle driven at speedMPS with the
// given lateral acceleration. Callers must not pass lateralG == 0, the result is +Inf then.
func TurnRadius(speedMPS, lateralG float64) float64 {
	if lateralG == 0 {
		return math.Inf(1)
	}
	return speedMPS * speedMPS / (math.Abs(lateralG) * Gravity)
}

// KinematicSteerDeg is the Ackermann steer angle in degrees for the given radius.
func KinematicSteerDeg(wheelbase, radius float64) float64 {
	return Degrees(wheelbase / radius)
}

// ExpectedYawRate returns the yaw rate in deg/s of a neutral steering car.
// It is v*a/v², which reduces to a/v. Returns 0 for speedMPS <= 0.
func ExpectedYawRate(speedMPS, lateralG float64) float64 {
	if speedMPS <= 0 {
		return 0
	}
	return Degrees(lateralG * Gravity / speedMPS)
}
