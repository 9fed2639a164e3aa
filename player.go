package canvasanim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrFrameLimit is returned by Player.Run when the timeline has not finished
// within the frame budget.
var ErrFrameLimit = errors.New("canvasanim: frame limit reached")

// PlayerConfig configures script playback.
type PlayerConfig struct {
	Capacity int      // task table size; defaults to 256
	TPS      int      // frames per second of the manual clock; defaults to 60
	Options  []Option // extra scheduler options
}

// Sample is a snapshot of one node taken by a sample step.
type Sample struct {
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Frame    int           `json:"frame" yaml:"frame"`
	Time     time.Duration `json:"time" yaml:"time"`
	Node     string        `json:"node" yaml:"node"`
	Position Vec3          `json:"position" yaml:"position"`
	Rotation Vec3          `json:"rotation" yaml:"rotation"`
	Scale    Vec3          `json:"scale" yaml:"scale"`
	Color    *Color        `json:"color,omitempty" yaml:"color,omitempty"`
	Active   int           `json:"active" yaml:"active"`
}

// Player plays a Script frame by frame. Each Step runs the steps due this
// frame, advances the clock by one frame and ticks the scheduler.
type Player struct {
	script  *Script
	sched   *Scheduler
	clock   *ManualClock
	frame   time.Duration
	root    *Node
	nodes   map[string]*Node
	order   []string
	cursor  int
	wait    int
	frames  int
	done    bool
	samples []Sample
	errs    []error
}

// NewPlayer builds the script's scene and a scheduler driven by a manual
// clock.
func NewPlayer(sc *Script, cfg PlayerConfig) (*Player, error) {
	if sc == nil {
		return nil, fmt.Errorf("new player: nil script")
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 256
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	p := &Player{
		script: sc,
		clock:  &ManualClock{},
		frame:  time.Second / time.Duration(cfg.TPS),
		root:   NewContainer("root"),
		nodes:  make(map[string]*Node, len(sc.Nodes)),
	}
	opts := append(append([]Option{}, cfg.Options...), WithClock(p.clock), WithOnError(func(err error) {
		p.errs = append(p.errs, fmt.Errorf("frame %d: %w", p.frames, err))
	}))
	p.sched = New(cfg.Capacity, opts...)

	if err := p.buildScene(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) buildScene() error {
	for _, sn := range p.script.Nodes {
		typ, ok := parseNodeType(sn.Type)
		if !ok {
			return fmt.Errorf("build scene: node %q: unknown type %q", sn.Name, sn.Type)
		}
		var n *Node
		switch typ {
		case NodeTypeSprite:
			n = NewSprite(sn.Name, ColorWhite)
		case NodeTypeText:
			n = NewText(sn.Name, ColorWhite)
		case NodeTypeButton:
			n = NewButton(sn.Name, nil)
		default:
			n = NewContainer(sn.Name)
		}
		n.SetPosition(sn.Position.over(n.Position()))
		n.SetRotation(sn.Rotation.over(n.Rotation()))
		n.SetScale(sn.Scale.over(n.Scale()))
		if sn.Color != nil {
			c, _ := n.ColorOf(ColorKindAuto)
			c, err := sn.Color.over(c)
			if err != nil {
				return fmt.Errorf("build scene: node %q: %w", sn.Name, err)
			}
			n.SetColorOf(ColorKindAuto, c)
		}
		p.nodes[sn.Name] = n
		p.order = append(p.order, sn.Name)
	}
	for _, sn := range p.script.Nodes {
		parent := p.root
		if sn.Parent != "" {
			if parent = p.nodes[sn.Parent]; parent == nil {
				return fmt.Errorf("build scene: node %q: unknown parent %q", sn.Name, sn.Parent)
			}
		}
		parent.AddChild(p.nodes[sn.Name])
	}
	UpdateTransforms(p.root)
	return nil
}

// Scheduler returns the scheduler driven by the player.
func (p *Player) Scheduler() *Scheduler { return p.sched }

// Root returns the root of the script's scene.
func (p *Player) Root() *Node { return p.root }

// Node returns the named scene node.
func (p *Player) Node(name string) *Node { return p.nodes[name] }

// Frame returns the number of frames played.
func (p *Player) Frame() int { return p.frames }

// Samples returns the samples taken so far.
func (p *Player) Samples() []Sample { return p.samples }

// Errors returns every error raised by steps or ticks so far.
func (p *Player) Errors() []error { return p.errs }

// Done reports whether every step has run.
func (p *Player) Done() bool { return p.done }

// Step plays one frame.
func (p *Player) Step() {
	if !p.done {
		p.runSteps()
	}
	p.clock.Advance(p.frame)
	p.sched.Update()
	UpdateTransforms(p.root)
	p.frames++
}

// runSteps executes steps until one asks to wait or the script ends.
func (p *Player) runSteps() {
	if p.wait > 0 {
		p.wait--
		return
	}
	for p.cursor < len(p.script.Steps) {
		st := &p.script.Steps[p.cursor]
		p.cursor++
		if st.Action == "wait" {
			p.wait = p.waitFrames(st) - 1 // this frame counts as one
			break
		}
		if err := p.exec(st); err != nil {
			p.errs = append(p.errs, fmt.Errorf("step %d (%s): %w", p.cursor, st.Action, err))
		}
	}
	if p.cursor >= len(p.script.Steps) && p.wait == 0 {
		p.done = true
	}
}

func (p *Player) waitFrames(st *ScriptStep) int {
	n := st.Frames
	if st.Wait > 0 {
		n = max(n, int(math.Ceil(float64(st.Wait)/float64(p.frame))))
	}
	return max(n, 1)
}

// Run plays frames until the script ends and no task is left running, or
// until maxFrames frames have been played. It returns the samples and every
// error raised along the way.
func (p *Player) Run(maxFrames int) ([]Sample, error) {
	for !p.done || (p.sched.Enabled() && p.sched.Active() > 0) {
		if maxFrames > 0 && p.frames >= maxFrames {
			p.errs = append(p.errs, fmt.Errorf("%w after %d frames", ErrFrameLimit, p.frames))
			break
		}
		p.Step()
	}
	return p.samples, errors.Join(p.errs...)
}

func (p *Player) exec(st *ScriptStep) error {
	n := p.nodes[st.Node]
	switch st.Action {
	case "submit":
		spec, err := p.taskSpec(st, n)
		if err != nil {
			return err
		}
		_, err = p.sched.Submit(spec)
		return err
	case "cancel":
		_, err := p.sched.Cancel(nodeOrNil(n))
		return err
	case "cancel_all":
		p.sched.CancelAll()
	case "save":
		set, err := parseChannels(st.Channels)
		if err != nil {
			return err
		}
		if set == 0 {
			set = SetAll
		}
		return p.sched.Save(nodeOrNil(n), set)
	case "define":
		return p.define(st, n)
	case "reset":
		set, err := parseChannels(st.Channels)
		if err != nil {
			return err
		}
		if set == 0 {
			set = SetAll
		}
		return p.sched.Reset(nodeOrNil(n), set)
	case "remove":
		return p.sched.Remove(nodeOrNil(n))
	case "sample":
		p.sample(st)
	case "exit":
		p.sched.Exit(st.After)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// nodeOrNil keeps a missing node from becoming a typed-nil Target.
func nodeOrNil(n *Node) Target {
	if n == nil {
		return nil
	}
	return n
}

func (p *Player) taskSpec(st *ScriptStep, n *Node) (TaskSpec, error) {
	mode, ok := ParseMode(st.Mode)
	if !ok {
		return TaskSpec{}, fmt.Errorf("unknown mode %q", st.Mode)
	}
	tr, ok := ParseTransition(st.Transition)
	if !ok && st.Transition != "" {
		return TaskSpec{}, fmt.Errorf("unknown transition %q", st.Transition)
	}
	kind, ok := parseColorKind(st.Kind)
	if !ok {
		return TaskSpec{}, fmt.Errorf("unknown color kind %q", st.Kind)
	}
	useBaseline, err := parseChannels(st.Baseline)
	if err != nil {
		return TaskSpec{}, err
	}
	color, err := st.Color.target()
	if err != nil {
		return TaskSpec{}, err
	}
	spec := TaskSpec{
		Target:      nodeOrNil(n),
		Mode:        mode,
		Duration:    st.Duration,
		Delay:       st.Delay,
		PixelOffset: st.Offset,
		Transition:  tr,
		ColorKind:   kind,
		Position:    st.Position.target(),
		Rotation:    st.Rotation.target(),
		Scale:       st.Scale.target(),
		Color:       color,
		UseBaseline: useBaseline,
	}
	if n == nil {
		return spec, nil
	}
	if st.StartPosition != nil {
		spec.StartPosition = Some(st.StartPosition.over(n.Position()))
	}
	if st.StartRotation != nil {
		spec.StartRotation = Some(st.StartRotation.over(n.Rotation()))
	}
	if st.StartScale != nil {
		spec.StartScale = Some(st.StartScale.over(n.Scale()))
	}
	if st.StartColor != nil {
		base, _ := n.ColorOf(kind)
		c, err := st.StartColor.over(base)
		if err != nil {
			return TaskSpec{}, err
		}
		spec.StartColor = Some(c)
	}
	return spec, nil
}

func (p *Player) define(st *ScriptStep, n *Node) error {
	set, err := parseChannels(st.Channels)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrInvalidTarget
	}
	var errs []error
	vals := [3]*Axes{st.Position, st.Rotation, st.Scale}
	for ch := ChannelPosition; ch <= ChannelScale; ch++ {
		if set.Has(ch) {
			errs = append(errs, p.sched.DefineTransform(n, ch, vals[ch].over(readVec(n, ch))))
		}
	}
	if set.Has(ChannelColor) {
		base, _ := n.ColorOf(ColorKindAuto)
		c, err := st.Color.over(base)
		if err == nil {
			err = p.sched.DefineColor(n, c)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (p *Player) sample(st *ScriptStep) {
	names := p.order
	if st.Node != "" {
		names = []string{st.Node}
	}
	for _, name := range names {
		n := p.nodes[name]
		s := Sample{
			Label:    st.Label,
			Frame:    p.frames,
			Time:     p.clock.Now(),
			Node:     name,
			Position: n.Position(),
			Rotation: n.Rotation(),
			Scale:    n.Scale(),
			Active:   p.sched.Active(),
		}
		if c, ok := n.ColorOf(ColorKindAuto); ok {
			s.Color = &c
		}
		p.samples = append(p.samples, s)
	}
}
