package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Global context passed to subcommands.
type Global struct {
	// Out receives command output meant for the user (summaries, fingerprints).
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file path" default:"docsite.yaml" env:"DOCSITE_CONFIG"`
	EnvFile []string         `name:"env-file" help:"Dotenv files with DOCSITE_* overrides; the process environment wins" default:".env" sep:","`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" default:"1" help:"Validate the site configuration and print a summary"`
	Export   ExportCmd   `cmd:"" help:"Write the resolved configuration as JSON for the site builder"`
	Init     InitCmd     `cmd:"" help:"Write an example site configuration"`
	Watch    WatchCmd    `cmd:"" help:"Re-validate and re-export whenever the configuration changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Environment returns the override source: the process environment layered over the env files.
func (c *CLI) Environment() (config.Env, error) {
	fileEnv, err := config.LoadDotEnv(c.EnvFile...)
	if err != nil {
		return nil, err
	}
	return config.Layered{config.OSEnv{}, fileEnv}, nil
}

// LoadSite reads the configuration file and applies environment overrides.
func (c *CLI) LoadSite() (*config.Site, error) {
	env, err := c.Environment()
	if err != nil {
		return nil, err
	}
	site, err := config.LoadFile(c.Config)
	if err != nil {
		return nil, err
	}
	for _, key := range config.OverrideKeys() {
		if _, ok := env.Lookup(key); ok {
			slog.Debug("Applying environment override", logfields.EnvKey(key))
		}
	}
	return config.ResolveEnvironmentOverrides(site, env)
}

// Classify lifts command errors into classified errors so the CLI adapter can pick exit codes.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}
	if ve, ok := config.AsValidationError(err); ok {
		b := ferrors.ValidationError("invalid site configuration").
			WithCause(err).
			WithContext("field", ve.Field).
			WithContext("reason", ve.Reason)
		if ve.Source != "" {
			b = b.WithContext("source", ve.Source)
		}
		return b.Build()
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ferrors.ConfigError("configuration file not found").WithCause(err).Build()
	case errors.Is(err, fs.ErrExist):
		return ferrors.ConfigError("refusing to overwrite configuration").WithCause(err).Build()
	case errors.Is(err, fs.ErrPermission):
		return ferrors.FileSystemError("permission denied").WithCause(err).Fatal().Build()
	}
	return ferrors.InternalError("command failed").WithCause(err).Fatal().Build()
}
