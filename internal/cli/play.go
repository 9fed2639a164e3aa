package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canvasanim"
)

// PlayReport is the result of playing one script.
type PlayReport struct {
	Script  string              `json:"script"`
	Frames  int                 `json:"frames"`
	Elapsed time.Duration       `json:"elapsed"`
	Samples []canvasanim.Sample `json:"samples"`
	Stats   canvasanim.Stats    `json:"stats"`
	Errors  []string            `json:"errors,omitempty"`
}

func newPlayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <script>",
		Short: "Play a timeline script and print its samples",
		Long: `Play a timeline script frame by frame on a manual clock.

Every sample step records the node's position, rotation, scale and colour.
Playback ends once the script has no steps left and no task is running, or
when playback.max_frames is reached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, args[0])
		},
	}
}

func (a *app) runPlay(cmd *cobra.Command, path string) error {
	sc, err := readScript(path)
	if err != nil {
		return err
	}

	player, err := canvasanim.NewPlayer(sc, canvasanim.PlayerConfig{
		Capacity: a.cfg.Scheduler.Capacity,
		TPS:      a.cfg.Playback.TPS,
		Options: []canvasanim.Option{
			canvasanim.WithLogger(a.log),
			canvasanim.WithDebug(a.cfg.Scheduler.Debug),
		},
	})
	if err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}

	a.log.Info("playing script", "script", sc.Name, "nodes", len(sc.Nodes), "steps", len(sc.Steps))
	samples, runErr := player.Run(a.cfg.Playback.MaxFrames)

	report := PlayReport{
		Script:  scriptName(sc, path),
		Frames:  player.Frame(),
		Elapsed: player.Scheduler().Clock().Now(),
		Samples: samples,
		Stats:   player.Scheduler().Stats(),
	}
	for _, e := range player.Errors() {
		report.Errors = append(report.Errors, e.Error())
	}

	out := newFormatter(cmd.OutOrStdout(), a.cfg.Output.Format)
	if err := out.play(report); err != nil {
		return err
	}
	if errors.Is(runErr, canvasanim.ErrFrameLimit) {
		return fmt.Errorf("play %s: %w", path, canvasanim.ErrFrameLimit)
	}
	return nil
}

func readScript(path string) (*canvasanim.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	sc, err := canvasanim.LoadScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func scriptName(sc *canvasanim.Script, path string) string {
	if sc.Name != "" {
		return sc.Name
	}
	return path
}
