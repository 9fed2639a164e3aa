package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by the version command. Overridden at link time.
var Version = "dev"

// app carries the state shared by the subcommands of one root command.
type app struct {
	v   *viper.Viper
	cfg *Config
	log *slog.Logger
}

// NewRootCommand creates the canvasanim command tree. Each call owns its own
// viper instance so commands can be executed repeatedly in one process.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "canvasanim",
		Short: "Play and check animation timeline scripts",
		Long: `canvasanim plays timeline scripts against the animation scheduler
on a deterministic clock and reports the sampled node properties.

Settings come from canvasanim.yaml (or --config), CANVASANIM_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./canvasanim.yaml)")
	flags.String("format", "", "output format (text|json)")
	flags.Int("capacity", 0, "task table capacity")
	flags.Int("tps", 0, "playback frames per second")
	flags.Int("max-frames", 0, "stop playback after this many frames")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.Bool("debug", false, "log per-tick scheduler timing")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("output.format", flags.Lookup("format"))
	_ = a.v.BindPFlag("scheduler.capacity", flags.Lookup("capacity"))
	_ = a.v.BindPFlag("scheduler.debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("playback.tps", flags.Lookup("tps"))
	_ = a.v.BindPFlag("playback.max_frames", flags.Lookup("max-frames"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))

	cmd.AddCommand(newPlayCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	SetDefaults(a.v)

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("canvasanim")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}

	a.v.SetEnvPrefix("CANVASANIM")
	// CANVASANIM_PLAYBACK_MAX_FRAMES maps to playback.max_frames
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.v.GetString("config") != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := LoadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), cfg.Logging)
	a.log.Debug("config loaded", "file", a.v.ConfigFileUsed())
	return nil
}

func newLogger(w io.Writer, cfg LoggingConfig) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(h)
}
