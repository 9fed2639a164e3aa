package canvasanim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Script is a timeline: a small scene of named nodes and a list of steps
// played one frame at a time against a ManualClock. Scripts are YAML; JSON
// documents parse as well.
type Script struct {
	Name  string       `yaml:"name,omitempty"`
	Nodes []ScriptNode `yaml:"nodes"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptNode declares a node of the script's scene.
type ScriptNode struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type,omitempty"` // container, sprite, text, button
	Parent   string      `yaml:"parent,omitempty"`
	Position *Axes       `yaml:"position,omitempty"`
	Rotation *Axes       `yaml:"rotation,omitempty"`
	Scale    *Axes       `yaml:"scale,omitempty"`
	Color    *ColorValue `yaml:"color,omitempty"`
}

// ScriptStep is one action of a timeline.
//
// Actions: submit, cancel, cancel_all, save, define, reset, remove, wait,
// sample and exit.
type ScriptStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Node   string `yaml:"node,omitempty"`

	Mode       string        `yaml:"mode,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	Transition string        `yaml:"transition,omitempty"`
	Offset     float64       `yaml:"offset,omitempty"`
	Kind       string        `yaml:"kind,omitempty"`

	Position *Axes       `yaml:"position,omitempty"`
	Rotation *Axes       `yaml:"rotation,omitempty"`
	Scale    *Axes       `yaml:"scale,omitempty"`
	Color    *ColorValue `yaml:"color,omitempty"`

	StartPosition *Axes       `yaml:"start_position,omitempty"`
	StartRotation *Axes       `yaml:"start_rotation,omitempty"`
	StartScale    *Axes       `yaml:"start_scale,omitempty"`
	StartColor    *ColorValue `yaml:"start_color,omitempty"`

	// Baseline lists the channels a submit prefers baselines for.
	Baseline []string `yaml:"baseline,omitempty"`
	// Channels lists the channels of save, define and reset.
	Channels []string `yaml:"channels,omitempty"`

	Frames int           `yaml:"frames,omitempty"`
	Wait   time.Duration `yaml:"for,omitempty"`
	After  time.Duration `yaml:"after,omitempty"`
}

// Axes is a partially specified vector. It decodes from a mapping such as
// {x: 10} or from a three element sequence.
type Axes struct {
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	Z *float64 `yaml:"z,omitempty"`
}

// UnmarshalYAML accepts both [x, y, z] and {x: .., y: .., z: ..}.
func (a *Axes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var v []float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		if len(v) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(v))
		}
		a.X, a.Y, a.Z = &v[0], &v[1], &v[2]
		return nil
	}
	type plain Axes
	return node.Decode((*plain)(a))
}

// target converts a to a VecTarget animating only the given components.
func (a *Axes) target() VecTarget {
	var vt VecTarget
	if a == nil {
		return vt
	}
	if a.X != nil {
		vt.X, vt.Axes = *a.X, vt.Axes|AxisX
	}
	if a.Y != nil {
		vt.Y, vt.Axes = *a.Y, vt.Axes|AxisY
	}
	if a.Z != nil {
		vt.Z, vt.Axes = *a.Z, vt.Axes|AxisZ
	}
	return vt
}

// over fills the missing components of a from base.
func (a *Axes) over(base Vec3) Vec3 {
	vt := a.target()
	return lerpVec(base, vt, 1, false)
}

// ColorValue is a partially specified color. It decodes from a hex string
// ("#rrggbb" or "#rrggbbaa") or from a mapping with optional hex, r, g, b
// and a keys; explicit channels override the hex value.
type ColorValue struct {
	Hex string   `yaml:"hex,omitempty"`
	R   *float64 `yaml:"r,omitempty"`
	G   *float64 `yaml:"g,omitempty"`
	B   *float64 `yaml:"b,omitempty"`
	A   *float64 `yaml:"a,omitempty"`
}

// UnmarshalYAML accepts a scalar hex string or a mapping.
func (c *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Hex = node.Value
		return nil
	}
	type plain ColorValue
	return node.Decode((*plain)(c))
}

// target converts c to a ColorTarget.
func (c *ColorValue) target() (ColorTarget, error) {
	var ct ColorTarget
	if c == nil {
		return ct, nil
	}
	if c.Hex != "" {
		col, alpha, hasAlpha, err := parseHex(c.Hex)
		if err != nil {
			return ct, err
		}
		ct.Color = col
		ct.Channels = ChannelRGB
		if hasAlpha {
			ct.A = alpha
			ct.Channels |= ChannelA
		}
	}
	set := func(dst *float64, v *float64, m ColorMask) {
		if v != nil {
			*dst = *v
			ct.Channels |= m
		}
	}
	set(&ct.R, c.R, ChannelR)
	set(&ct.G, c.G, ChannelG)
	set(&ct.B, c.B, ChannelB)
	set(&ct.A, c.A, ChannelA)
	return ct, nil
}

// over fills the missing channels of c from base.
func (c *ColorValue) over(base Color) (Color, error) {
	ct, err := c.target()
	if err != nil {
		return base, err
	}
	return lerpColor(base, ct, 1, false), nil
}

// parseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func parseHex(s string) (c Color, alpha float64, hasAlpha bool, err error) {
	if len(s) == 9 && s[0] == '#' {
		a, perr := strconv.ParseUint(s[7:], 16, 8)
		if perr != nil {
			return c, 0, false, fmt.Errorf("color %q: %w", s, perr)
		}
		alpha, hasAlpha = float64(a)/255, true
		s = s[:7]
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return c, 0, false, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: col.R, G: col.G, B: col.B, A: 1}, alpha, hasAlpha, nil
}

// LoadScript parses a YAML (or JSON) timeline and validates it.
func LoadScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

var scriptActions = map[string]bool{
	"submit": true, "cancel": true, "cancel_all": true,
	"save": true, "define": true, "reset": true, "remove": true,
	"wait": true, "sample": true, "exit": true,
}

// Validate reports every structural problem of the script at once.
func (sc *Script) Validate() error {
	var errs []error
	names := map[string]bool{}
	for i, n := range sc.Nodes {
		switch {
		case n.Name == "":
			errs = append(errs, fmt.Errorf("node %d: missing name", i))
		case names[n.Name]:
			errs = append(errs, fmt.Errorf("node %q: duplicate name", n.Name))
		}
		names[n.Name] = true
		if _, ok := parseNodeType(n.Type); !ok {
			errs = append(errs, fmt.Errorf("node %q: unknown type %q", n.Name, n.Type))
		}
		if _, err := n.Color.target(); err != nil {
			errs = append(errs, fmt.Errorf("node %q: %w", n.Name, err))
		}
	}
	for i, n := range sc.Nodes {
		if n.Parent != "" && !names[n.Parent] {
			errs = append(errs, fmt.Errorf("node %q: unknown parent %q", sc.Nodes[i].Name, n.Parent))
		}
	}

	for i, st := range sc.Steps {
		fail := func(format string, args ...any) {
			errs = append(errs, fmt.Errorf("step %d (%s): %s", i+1, st.Action, fmt.Sprintf(format, args...)))
		}
		if !scriptActions[st.Action] {
			fail("unknown action")
			continue
		}
		switch st.Action {
		case "submit", "cancel", "save", "define", "reset", "remove":
			if !names[st.Node] {
				fail("unknown node %q", st.Node)
			}
		case "sample":
			if st.Node != "" && !names[st.Node] {
				fail("unknown node %q", st.Node)
			}
		case "wait":
			if st.Frames <= 0 && st.Wait <= 0 {
				fail("needs frames or for")
			}
		}
		if st.Action == "submit" {
			if _, ok := ParseMode(st.Mode); !ok {
				fail("unknown mode %q", st.Mode)
			}
			if _, ok := ParseTransition(st.Transition); st.Transition != "" && !ok {
				fail("unknown transition %q", st.Transition)
			}
			if _, ok := parseColorKind(st.Kind); !ok {
				fail("unknown color kind %q", st.Kind)
			}
			if st.Duration < 0 || st.Delay < 0 {
				fail("negative duration or delay")
			}
		}
		if _, err := parseChannels(st.Baseline); err != nil {
			fail("%v", err)
		}
		if _, err := parseChannels(st.Channels); err != nil {
			fail("%v", err)
		}
		if st.Action == "define" {
			set, _ := parseChannels(st.Channels)
			if set == 0 {
				fail("needs channels")
			}
		}
		for _, c := range []*ColorValue{st.Color, st.StartColor} {
			if _, err := c.target(); err != nil {
				fail("%v", err)
			}
		}
	}
	return errors.Join(errs...)
}

func parseNodeType(s string) (NodeType, bool) {
	switch strings.ToLower(s) {
	case "", "container":
		return NodeTypeContainer, true
	case "sprite":
		return NodeTypeSprite, true
	case "text":
		return NodeTypeText, true
	case "button":
		return NodeTypeButton, true
	}
	return 0, false
}

func parseColorKind(s string) (ColorKind, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorKindAuto, true
	case "sprite":
		return ColorKindSprite, true
	case "text":
		return ColorKindText, true
	case "button":
		return ColorKindButton, true
	}
	return 0, false
}

func parseChannels(names []string) (ChannelSet, error) {
	var set ChannelSet
	for _, n := range names {
		switch strings.ToLower(n) {
		case "position":
			set |= SetPosition
		case "rotation":
			set |= SetRotation
		case "scale":
			set |= SetScale
		case "color":
			set |= SetColor
		case "transform":
			set |= SetTransform
		case "all":
			set |= SetAll
		default:
			return 0, fmt.Errorf("unknown channel %q", n)
		}
	}
	return set, nil
}
