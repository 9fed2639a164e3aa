package canvasanim

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec3 is a 3D vector used for local positions, Euler rotations (degrees)
// and scales. X grows to the right and Y grows downward, as on screen.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vec3One is the identity scale.
var Vec3One = Vec3{1, 1, 1}

// AxisMask selects which axes of a VecTarget are animated.
// Values can be combined with bitwise OR (e.g. AxisX | AxisY).
type AxisMask uint8

const (
	AxisX AxisMask = 1 << iota // animate the X component
	AxisY                      // animate the Y component
	AxisZ                      // animate the Z component

	AxisAll = AxisX | AxisY | AxisZ
)

// VecTarget is a per-axis optional vector. Axes outside Axes hold their start
// value for the whole task. The zero value animates nothing.
type VecTarget struct {
	Vec3
	Axes AxisMask
}

// TargetVec returns a VecTarget that animates all three axes.
func TargetVec(v Vec3) VecTarget {
	return VecTarget{Vec3: v, Axes: AxisAll}
}

// TargetAxes returns a VecTarget that animates only the given axes of v.
func TargetAxes(v Vec3, axes AxisMask) VecTarget {
	return VecTarget{Vec3: v, Axes: axes & AxisAll}
}

// Set reports whether at least one axis is animated.
func (t VecTarget) Set() bool {
	return t.Axes&AxisAll != 0
}

// ColorMask selects which channels of a ColorTarget are animated.
type ColorMask uint8

const (
	ChannelR ColorMask = 1 << iota // red
	ChannelG                       // green
	ChannelB                       // blue
	ChannelA                       // alpha

	ChannelRGB  = ChannelR | ChannelG | ChannelB
	ChannelRGBA = ChannelRGB | ChannelA
)

// ColorTarget is a per-channel optional color. Channels outside Channels hold
// their start value for the whole task. The zero value animates nothing.
type ColorTarget struct {
	Color
	Channels ColorMask
}

// TargetColor returns a ColorTarget that animates all four channels.
func TargetColor(c Color) ColorTarget {
	return ColorTarget{Color: c, Channels: ChannelRGBA}
}

// TargetChannels returns a ColorTarget that animates only the given channels.
func TargetChannels(c Color, channels ColorMask) ColorTarget {
	return ColorTarget{Color: c, Channels: channels & ChannelRGBA}
}

// Set reports whether at least one channel is animated.
func (t ColorTarget) Set() bool {
	return t.Channels&ChannelRGBA != 0
}

// Channel is one of the four animatable property groups.
type Channel uint8

const (
	ChannelPosition Channel = iota // local position
	ChannelRotation                // local Euler rotation
	ChannelScale                   // local scale
	ChannelColor                   // color as seen by the node's color accessor

	numChannels = 4
)

var channelNames = [numChannels]string{"position", "rotation", "scale", "color"}

// String returns the lower-case channel name.
func (c Channel) String() string {
	if int(c) < numChannels {
		return channelNames[c]
	}
	return "unknown"
}

// ChannelSet is a bitmask of channels, used by the baseline operations.
type ChannelSet uint8

const (
	SetPosition ChannelSet = 1 << iota // position channel
	SetRotation                        // rotation channel
	SetScale                           // scale channel
	SetColor                           // color channel

	SetTransform = SetPosition | SetRotation | SetScale
	SetAll       = SetTransform | SetColor
)

// Has reports whether ch is a member of the set.
func (s ChannelSet) Has(ch Channel) bool {
	return s&(1<<ch) != 0
}

// Of returns the singleton set for ch.
func Of(ch Channel) ChannelSet {
	return 1 << ch
}

// ColorKind selects which color accessor of a node a task reads and writes.
// ColorKindAuto lets the node pick its primary color.
type ColorKind uint8

const (
	ColorKindAuto   ColorKind = iota // the node's primary color for its type
	ColorKindSprite                  // sprite/image tint (Node.Color)
	ColorKindText                    // text color (Node.TextColor)
	ColorKindButton                  // color of a button's target graphic
)

// Mode selects how eased progress is applied to the target.
type Mode uint8

const (
	ModeNone Mode = iota // no property writes; the task only occupies time

	ModeFadeIn  // alpha <- eased
	ModeFadeOut // alpha <- 1 - eased

	ModeMoveUp    // slide in upward to the start position
	ModeMoveDown  // slide in downward to the start position
	ModeMoveRight // slide in rightward to the start position
	ModeMoveLeft  // slide in leftward to the start position

	ModeMoveToUp    // slide out upward from the start position
	ModeMoveToDown  // slide out downward from the start position
	ModeMoveToRight // slide out rightward from the start position
	ModeMoveToLeft  // slide out leftward from the start position

	ModeMoveTo   // start -> target position
	ModeMoveFrom // target -> start position

	ModeScaleTo   // start -> target scale
	ModeScaleFrom // target -> start scale

	ModeRotateTo   // start -> target rotation
	ModeRotateFrom // target -> start rotation

	ModeColorTo   // start -> target color
	ModeColorFrom // target -> start color

	ModeFlipX // half turn around X
	ModeFlipY // half turn around Y
	ModeFlipZ // half turn around Z
)

var modeNames = [...]string{
	"none",
	"fade_in", "fade_out",
	"move_up", "move_down", "move_right", "move_left",
	"move_to_up", "move_to_down", "move_to_right", "move_to_left",
	"move_to", "move_from",
	"scale_to", "scale_from",
	"rotate_to", "rotate_from",
	"color_to", "color_from",
	"flip_x", "flip_y", "flip_z",
}

// String returns the snake_case mode name used by timeline scripts.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return ModeNone, false
}

// lerp interpolates between a and b. Exact at both endpoints.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerpAngle interpolates between two angles in degrees along the shortest
// path.
func lerpAngle(a, b, t float64) float64 {
	d := math.Mod(b-a, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return a + d*t
}
