package canvasanim

import "github.com/tanema/gween/ease"

// Transition selects the easing curve applied to raw progress before
// interpolation.
type Transition uint8

const (
	TransitionNone      Transition = iota // identical to Linear
	TransitionLinear                      // t
	TransitionEaseIn                      // t²
	TransitionEaseOut                     // 1-(1-t)²
	TransitionEaseInOut                   // smoothstep 3t²-2t³

	// Extended curves evaluated through gween's ease package.
	TransitionInOutQuad
	TransitionInCubic
	TransitionOutCubic
	TransitionInOutCubic
	TransitionInOutSine
	TransitionOutBack
	TransitionOutBounce
	TransitionOutElastic
)

var transitionNames = [...]string{
	"none", "linear", "ease_in", "ease_out", "ease_in_out",
	"in_out_quad", "in_cubic", "out_cubic", "in_out_cubic",
	"in_out_sine", "out_back", "out_bounce", "out_elastic",
}

// gweenCurves maps extended transitions to gween ease functions.
// Entries for the built-in curves are nil.
var gweenCurves = [...]ease.TweenFunc{
	TransitionInOutQuad:  ease.InOutQuad,
	TransitionInCubic:    ease.InCubic,
	TransitionOutCubic:   ease.OutCubic,
	TransitionInOutCubic: ease.InOutCubic,
	TransitionInOutSine:  ease.InOutSine,
	TransitionOutBack:    ease.OutBack,
	TransitionOutBounce:  ease.OutBounce,
	TransitionOutElastic: ease.OutElastic,
}

// String returns the snake_case transition name used by timeline scripts.
func (k Transition) String() string {
	if int(k) < len(transitionNames) {
		return transitionNames[k]
	}
	return "unknown"
}

// ParseTransition is the inverse of Transition.String.
func ParseTransition(s string) (Transition, bool) {
	for i, n := range transitionNames {
		if n == s {
			return Transition(i), true
		}
	}
	return TransitionNone, false
}

// Ease maps progress t to eased progress. t is clamped to [0, 1], and the
// endpoints are exact for every curve: Ease(0, k) == 0 and Ease(1, k) == 1.
func Ease(t float64, kind Transition) float64 {
	return easeWith(t, kind, nil)
}

// easeWith is Ease with an optional custom gween curve that overrides kind.
func easeWith(t float64, kind Transition, custom ease.TweenFunc) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if custom != nil {
		return float64(custom(float32(t), 0, 1, 1))
	}
	switch kind {
	case TransitionEaseIn:
		return t * t
	case TransitionEaseOut:
		return 1 - (1-t)*(1-t)
	case TransitionEaseInOut:
		return t * t * (3 - 2*t)
	}
	if int(kind) < len(gweenCurves) && gweenCurves[kind] != nil {
		return float64(gweenCurves[kind](float32(t), 0, 1, 1))
	}
	return t
}
