package canvasanim

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Driver hosts a Scheduler inside an ebiten game loop. Each Update advances
// Clock by one tick (1/ebiten.TPS()), ticks the scheduler and refreshes the
// world transforms of Root. It implements ebiten.Game.
type Driver struct {
	Scheduler  *Scheduler
	Clock      *ManualClock
	Root       *Node
	ClearColor Color

	// UpdateFunc runs before the scheduler tick each frame.
	UpdateFunc func() error
	// DrawFunc replaces the built-in renderer when set.
	DrawFunc func(screen *ebiten.Image)

	showFPS       bool
	width, height int
}

// NewDriver creates a driver animating the tree under root. The scheduler
// clock is the driver's ManualClock.
func NewDriver(root *Node, capacity int, opts ...Option) *Driver {
	clock := &ManualClock{}
	if root == nil {
		root = NewContainer("root")
	}
	return &Driver{
		Scheduler: New(capacity, append(opts, WithClock(clock))...),
		Clock:     clock,
		Root:      root,
	}
}

// Update implements ebiten.Game.
func (d *Driver) Update() error {
	if d.UpdateFunc != nil {
		if err := d.UpdateFunc(); err != nil {
			return err
		}
	}
	d.Clock.Advance(time.Second / time.Duration(ebiten.TPS()))
	d.Scheduler.Update()
	UpdateTransforms(d.Root)
	return nil
}

// Draw implements ebiten.Game.
func (d *Driver) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(d.ClearColor))
	if d.DrawFunc != nil {
		d.DrawFunc(screen)
	} else {
		drawTree(screen, d.Root)
	}
	if d.showFPS {
		st := d.Scheduler.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ntasks: %d/%d (peak %d)",
			ebiten.ActualFPS(), ebiten.ActualTPS(), st.Active, st.Capacity, st.Peak))
	}
}

// Layout implements ebiten.Game.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if d.width > 0 && d.height > 0 {
		return d.width, d.height
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and runs d until the window closes or Update fails.
func Run(d *Driver, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	d.width, d.height = cfg.Width, cfg.Height
	d.showFPS = cfg.ShowFPS
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(d)
}

var whitePixel *ebiten.Image

// drawTree draws every visible sized node as a tinted rectangle.
func drawTree(screen *ebiten.Image, root *Node) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	var op ebiten.DrawImageOptions
	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if c, ok := n.ColorOf(ColorKindAuto); ok && n.Width > 0 && n.Height > 0 {
			w := n.worldTransform
			op.GeoM.Reset()
			op.GeoM.Scale(n.Width, n.Height)
			op.GeoM.Concat(geoM(w))
			op.ColorScale.Reset()
			op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
			op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
			screen.DrawImage(whitePixel, &op)
		}
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(root)
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func toRGBA(c Color) color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(max(0, min(1, v))*255 + 0.5)
	}
	a := clamp(c.A)
	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: a,
	}
}
