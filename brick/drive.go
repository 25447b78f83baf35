package brick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mix converts a joystick position into left and right track power in
// percent. x steers (positive turns right), y is throttle. Both axes are
// clamped to [-1, 1] and the pair is scaled together so turning at full
// throttle never saturates one side.
func Mix(x, y float64) (left, right int) {
	stick := mgl64.Vec2{
		mgl64.Clamp(x, -1, 1),
		mgl64.Clamp(y, -1, 1),
	}

	tracks := mgl64.Vec2{stick.Y() + stick.X(), stick.Y() - stick.X()}
	if m := math.Max(math.Abs(tracks[0]), math.Abs(tracks[1])); m > 1 {
		tracks = mgl64.Vec2{tracks[0] / m, tracks[1] / m}
	}

	tracks = tracks.Mul(100)
	return int(tracks[0]), int(tracks[1])
}
