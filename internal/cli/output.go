package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/canvasanim"
)

// formatter writes command results as styled text or JSON.
type formatter struct {
	w      io.Writer
	format string

	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
}

func newFormatter(w io.Writer, format string) *formatter {
	r := lipgloss.NewRenderer(w)
	return &formatter{
		w:      w,
		format: format,
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle().Foreground(lipgloss.Color("12")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (f *formatter) json(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *formatter) play(r PlayReport) error {
	if f.format == "json" {
		return f.json(r)
	}

	fmt.Fprintln(f.w, f.title.Render(r.Script)+f.muted.Render(
		fmt.Sprintf("  %d frames, %s", r.Frames, r.Elapsed)))
	for _, s := range r.Samples {
		fmt.Fprintln(f.w, f.sampleLine(s))
	}
	st := r.Stats
	fmt.Fprintln(f.w, f.muted.Render(fmt.Sprintf(
		"submitted %d  completed %d  cancelled %d  dropped %d  orphaned %d  peak %d/%d",
		st.Submitted, st.Completed, st.Cancelled, st.Dropped, st.Orphaned, st.Peak, st.Capacity)))
	for _, e := range r.Errors {
		fmt.Fprintln(f.w, f.bad.Render("✗ "+e))
	}
	return nil
}

func (f *formatter) sampleLine(s canvasanim.Sample) string {
	var sb strings.Builder
	name := s.Node
	if s.Label != "" {
		name = s.Label + " " + s.Node
	}
	sb.WriteString(f.label.Render(fmt.Sprintf("%-16s", name)))
	fmt.Fprintf(&sb, " f%-5d pos %s rot %s scale %s",
		s.Frame, vec(s.Position), vec(s.Rotation), vec(s.Scale))
	if s.Color != nil {
		c := s.Color
		fmt.Fprintf(&sb, " rgba(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
	}
	sb.WriteString(f.muted.Render(fmt.Sprintf(" active %d", s.Active)))
	return sb.String()
}

func vec(v canvasanim.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ValidationResult is the JSON shape of the validate command.
type ValidationResult struct {
	Script string   `json:"script"`
	Valid  bool     `json:"valid"`
	Nodes  int      `json:"nodes"`
	Steps  int      `json:"steps"`
	Errors []string `json:"errors,omitempty"`
}

func (f *formatter) validation(r ValidationResult) error {
	if f.format == "json" {
		return f.json(r)
	}
	if r.Valid {
		fmt.Fprintln(f.w, f.ok.Render("✓ "+r.Script)+f.muted.Render(
			fmt.Sprintf("  %d nodes, %d steps", r.Nodes, r.Steps)))
		return nil
	}
	fmt.Fprintln(f.w, f.bad.Render("✗ "+r.Script))
	for _, e := range r.Errors {
		fmt.Fprintln(f.w, "  "+e)
	}
	return nil
}
