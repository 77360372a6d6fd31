package breakout

import "math"

const (
	twoPi     = 2 * math.Pi
	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
	threeHalf = 3 * math.Pi / 2
)

// Launch angles by paddle movement at the moment of launch.
const (
	LaunchStraight = halfPi
	LaunchRight    = quarterPi
	LaunchLeft     = 3 * quarterPi
)

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// PaddleRedirect returns the travel angle after the ball meets the paddle.
// Angles in the upper half plane pass through unchanged; the redirect is
// asymmetric between the two lower quadrants.
func PaddleRedirect(a float64) float64 {
	a = NormalizeAngle(a)
	switch {
	case a >= math.Pi && a < threeHalf:
		return a - halfPi
	case a >= threeHalf:
		return math.Pi - (a - math.Pi)
	default:
		return a
	}
}

// Resolve turns a set of struck sides into a new travel angle.
// The vertical and horizontal rules are evaluated independently so a corner
// hit may apply one of each. The result is normalized.
func Resolve(a float64, s Sides) float64 {
	a = NormalizeAngle(a)

	switch {
	case s.Top && s.Bottom:
		if a <= halfPi || a >= threeHalf {
			a = 0
		} else {
			a = math.Pi
		}
	case s.Top && a < math.Pi:
		a = math.Pi + (math.Pi - a)
	case s.Bottom && a > math.Pi:
		a = math.Pi - (a - math.Pi)
	}
	a = NormalizeAngle(a)

	switch {
	case s.Left && s.Right:
		if a <= math.Pi {
			a = halfPi
		} else {
			a = threeHalf
		}
	case s.Left && a > halfPi && a < threeHalf:
		if a <= math.Pi {
			a -= halfPi
		} else {
			a -= math.Pi
		}
	case s.Right && (a < halfPi || a > threeHalf):
		if a < halfPi {
			a += halfPi
		} else {
			a -= halfPi
		}
	}
	return NormalizeAngle(a)
}
