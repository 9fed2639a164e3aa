package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canvasanim"
)

// ErrInvalidScript is returned by validate when a script has problems.
var ErrInvalidScript = errors.New("invalid script")

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script>...",
		Short: "Check timeline scripts without playing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(cmd.OutOrStdout(), a.cfg.Output.Format)
			invalid := 0
			for _, path := range args {
				r := validateScript(path)
				if !r.Valid {
					invalid++
					a.log.Debug("script rejected", "script", path, "errors", len(r.Errors))
				}
				if err := out.validation(r); err != nil {
					return err
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d: %w", invalid, len(args), ErrInvalidScript)
			}
			return nil
		},
	}
}

func validateScript(path string) ValidationResult {
	r := ValidationResult{Script: path}
	data, err := os.ReadFile(path)
	if err != nil {
		r.Errors = []string{err.Error()}
		return r
	}
	sc, err := canvasanim.LoadScript(data)
	if err != nil {
		r.Errors = splitErrors(err)
		return r
	}
	r.Valid = true
	r.Nodes = len(sc.Nodes)
	r.Steps = len(sc.Steps)
	return r
}

// splitErrors flattens an errors.Join tree into one message per problem.
func splitErrors(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, splitErrors(e)...)
		}
		return out
	}
	return strings.Split(err.Error(), "\n")
}
