package canvasanim

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"
)

func loadTestdata(t *testing.T, name string) *Script {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	return sc
}

func TestLoadScriptYAML(t *testing.T) {
	sc := loadTestdata(t, "intro.yaml")
	if sc.Name != "intro" || len(sc.Nodes) != 3 || len(sc.Steps) != 7 {
		t.Fatalf("script = %s, %d nodes, %d steps", sc.Name, len(sc.Nodes), len(sc.Steps))
	}
	submit := sc.Steps[1]
	if submit.Duration != 500*time.Millisecond || submit.Offset != 40 || submit.Mode != "move_up" {
		t.Errorf("submit step = %+v", submit)
	}
	if p := sc.Nodes[1].Position; p == nil || p.X == nil || *p.X != 10 || p.Z != nil {
		t.Errorf("title position = %+v", p)
	}
	if c := sc.Nodes[1].Color; c == nil || c.Hex != "#ff8800" || c.A == nil || *c.A != 0 {
		t.Errorf("title color = %+v", c)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	data := []byte(`{
		"nodes": [{"name": "a", "type": "sprite"}],
		"steps": [
			{"action": "submit", "node": "a", "mode": "move_to", "position": {"x": 10}, "duration": "1s"},
			{"action": "wait", "frames": 3},
			{"action": "sample", "label": "after"}
		]
	}`)
	sc, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Steps[0].Duration != time.Second || sc.Steps[1].Frames != 3 {
		t.Errorf("steps = %+v", sc.Steps)
	}
}

func TestLoadScriptInvalid(t *testing.T) {
	if _, err := LoadScript([]byte("steps: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestScriptValidateReportsEverything(t *testing.T) {
	sc := &Script{
		Nodes: []ScriptNode{{Name: "a", Type: "blob"}, {Name: "a"}, {Name: "b", Parent: "zz"}},
		Steps: []ScriptStep{
			{Action: "jump"},
			{Action: "submit", Node: "a", Mode: "spin"},
			{Action: "submit", Node: "ghost", Mode: "fade_in", Transition: "wobbly"},
			{Action: "wait"},
			{Action: "save", Node: "a", Channels: []string{"opacity"}},
			{Action: "define", Node: "a"},
			{Action: "submit", Node: "a", Mode: "color_to", Color: &ColorValue{Hex: "#zzzzzz"}},
		},
	}
	err := sc.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		`unknown type "blob"`, "duplicate name", `unknown parent "zz"`,
		"unknown action", `unknown mode "spin"`, `unknown node "ghost"`,
		`unknown transition "wobbly"`, "needs frames or for", `unknown channel "opacity"`,
		"needs channels", "#zzzzzz",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q:\n%v", want, err)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, a, hasAlpha, err := parseHex("#ff000080")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != 0 || !hasAlpha || math.Abs(a-128.0/255) > 1e-9 {
		t.Errorf("parseHex = %v %v %v", c, a, hasAlpha)
	}
	if _, _, hasAlpha, _ := parseHex("#00ff00"); hasAlpha {
		t.Error("6-digit hex should carry no alpha")
	}
	if _, _, _, err := parseHex("green"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestPlayerRunsIntro(t *testing.T) {
	sc := loadTestdata(t, "intro.yaml")
	p, err := NewPlayer(sc, PlayerConfig{Capacity: 8, TPS: 60})
	if err != nil {
		t.Fatal(err)
	}
	if p.Node("title").Parent != p.Node("panel") || p.Node("panel").Parent != p.Root() {
		t.Fatal("scene hierarchy not built")
	}
	if c := p.Node("title").TextColor; c.R != 1 || c.A != 0 {
		t.Errorf("title color = %v, want orange with alpha 0", c)
	}

	samples, err := p.Run(600)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.Done() || p.Scheduler().Active() != 0 {
		t.Error("playback should finish with no active tasks")
	}

	var mid, end []Sample
	for _, s := range samples {
		switch s.Label {
		case "mid":
			mid = append(mid, s)
		case "end":
			end = append(end, s)
		}
	}
	if len(mid) != 1 || len(end) != 3 {
		t.Fatalf("got %d mid and %d end samples, want 1 and 3", len(mid), len(end))
	}
	// Sliding up from 40px below the defined position.
	if y := mid[0].Position.Y; y <= 50 || y >= 90 {
		t.Errorf("mid panel y = %v, want between 50 and 90", y)
	}
	for _, s := range end {
		switch s.Node {
		case "panel":
			if s.Position != (Vec3{100, 50, 0}) {
				t.Errorf("end panel position = %v, want (100, 50, 0)", s.Position)
			}
		case "title":
			if s.Color == nil || s.Color.A != 1 {
				t.Errorf("end title color = %v, want alpha 1", s.Color)
			}
		}
	}
}

func TestPlayerStepErrorsCollected(t *testing.T) {
	data := []byte(`
nodes:
  - name: box
steps:
  - action: reset
    node: box
  - action: submit
    node: box
    mode: fade_in
    duration: 100ms
`)
	sc, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPlayer(sc, PlayerConfig{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Run(100)
	if !errors.Is(err, ErrMissingBaseline) {
		t.Errorf("err = %v, want ErrMissingBaseline", err)
	}
	if !errors.Is(err, ErrMissingAccessor) {
		t.Errorf("err = %v, want ErrMissingAccessor from the container fade", err)
	}
}

func TestPlayerFrameLimit(t *testing.T) {
	data := []byte(`
nodes: [{name: a}]
steps:
  - {action: submit, node: a, mode: move_to, position: [1, 1, 1], duration: 1h}
`)
	sc, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := NewPlayer(sc, PlayerConfig{})
	if _, err := p.Run(10); !errors.Is(err, ErrFrameLimit) {
		t.Errorf("err = %v, want ErrFrameLimit", err)
	}
	if p.Frame() != 10 {
		t.Errorf("Frame = %d, want 10", p.Frame())
	}
}

func TestPlayerExitStopsPlayback(t *testing.T) {
	data := []byte(`
nodes: [{name: a}]
steps:
  - {action: submit, node: a, mode: move_to, position: {x: 100}, duration: 10s}
  - {action: exit, after: 300ms}
`)
	sc, _ := LoadScript(data)
	p, _ := NewPlayer(sc, PlayerConfig{TPS: 10})
	if _, err := p.Run(1000); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Scheduler().Enabled() || p.Scheduler().Active() != 1 {
		t.Error("exit should disable the scheduler and leave the task in place")
	}
	if x := p.Node("a").X; x <= 0 || x >= 100 {
		t.Errorf("x = %v, want partial progress", x)
	}
}
