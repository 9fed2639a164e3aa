package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every command.
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler" json:"scheduler"`
	Playback  PlaybackConfig  `mapstructure:"playback" yaml:"playback" json:"playback"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// SchedulerConfig sizes the task table.
type SchedulerConfig struct {
	Capacity int  `mapstructure:"capacity" yaml:"capacity" json:"capacity"`
	Debug    bool `mapstructure:"debug" yaml:"debug" json:"debug"`
}

// PlaybackConfig controls the manual clock used for script playback.
type PlaybackConfig struct {
	TPS       int `mapstructure:"tps" yaml:"tps" json:"tps"`
	MaxFrames int `mapstructure:"max_frames" yaml:"max_frames" json:"max_frames"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// LoggingConfig controls the structured logger written to stderr.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{Capacity: 256},
		Playback:  PlaybackConfig{TPS: 60, MaxFrames: 36000},
		Output:    OutputConfig{Format: "text"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// SetDefaults registers the built-in settings with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("scheduler.capacity", d.Scheduler.Capacity)
	v.SetDefault("scheduler.debug", d.Scheduler.Debug)
	v.SetDefault("playback.tps", d.Playback.TPS)
	v.SetDefault("playback.max_frames", d.Playback.MaxFrames)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}
	return sb.String()
}

// Validate returns every invalid setting in c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	if c.Scheduler.Capacity <= 0 {
		errs = append(errs, ValidationError{"scheduler.capacity", c.Scheduler.Capacity, "must be positive"})
	}
	if c.Playback.TPS <= 0 {
		errs = append(errs, ValidationError{"playback.tps", c.Playback.TPS, "must be positive"})
	}
	if c.Playback.MaxFrames < 0 {
		errs = append(errs, ValidationError{"playback.max_frames", c.Playback.MaxFrames, "must not be negative"})
	}
	if !slices.Contains(ValidFormats, c.Output.Format) {
		errs = append(errs, ValidationError{"output.format", c.Output.Format, fmt.Sprintf("must be one of %v", ValidFormats)})
	}
	if !slices.Contains(ValidLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, fmt.Sprintf("must be one of %v", ValidLogLevels)})
	}
	return errs
}

// LoadConfig unmarshals and validates the settings held by v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Output.Format == "json" {
				return newFormatter(cmd.OutOrStdout(), "json").json(a.cfg)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
