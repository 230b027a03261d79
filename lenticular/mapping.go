// Package lenticular maps pointer and touch positions onto the card's pose: the cross-fade ratio between its two
// images and its tilt around the screen axes.
//
// Positions are in display pixels with the origin at the top-left corner and y growing downward. Every pose is a
// pure function of the latest position and the display size; nothing accumulates between events.
package lenticular

// MaxTilt is the rotation, in radians, reached when the pointer sits on a display edge.
const MaxTilt = 0.2

// Pose is the card state derived from a single pointer position.
type Pose struct {
	// Ratio is the cross-fade weight of the second image. 0 shows only the first image, 1 only the second.
	Ratio float64
	// TiltX is the rotation around the horizontal axis in radians.
	TiltX float64
	// TiltY is the rotation around the vertical axis in radians.
	TiltY float64
}

// BlendRatio maps a horizontal position to the cross-fade ratio x / width.
// The result is not clamped: positions outside the display extrapolate past 0 or 1.
func BlendRatio(x, width float64) float64 {
	return x / width
}

// TiltX maps a vertical position to a rotation around the horizontal axis. The top edge gives +MaxTilt, the center 0,
// and the bottom edge -MaxTilt.
func TiltX(y, height float64) float64 {
	return tiltX(y, height, MaxTilt)
}

// TiltY maps a horizontal position to a rotation around the vertical axis. The left edge gives -MaxTilt, the center 0,
// and the right edge +MaxTilt.
func TiltY(x, width float64) float64 {
	return tiltY(x, width, MaxTilt)
}

func tiltX(y, height, maxTilt float64) float64 {
	half := height / 2
	return -((y - half) / half) * maxTilt
}

func tiltY(x, width, maxTilt float64) float64 {
	half := width / 2
	return ((x - half) / half) * maxTilt
}

// Map computes the full pose for a position on a display of the given size using MaxTilt.
func Map(x, y, width, height float64) Pose {
	return mapWithTilt(x, y, width, height, MaxTilt)
}

func mapWithTilt(x, y, width, height, maxTilt float64) Pose {
	return Pose{
		Ratio: BlendRatio(x, width),
		TiltX: tiltX(y, height, maxTilt),
		TiltY: tiltY(x, width, maxTilt),
	}
}
