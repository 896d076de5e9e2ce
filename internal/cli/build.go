package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/wheelforge/wheelforge/internal/build"
	"github.com/wheelforge/wheelforge/internal/command"
	"github.com/wheelforge/wheelforge/internal/config"
	"github.com/wheelforge/wheelforge/internal/launcher"
	"github.com/wheelforge/wheelforge/internal/mode"
	"github.com/wheelforge/wheelforge/internal/paths"
)

// Represents the 'wheelforge build' command.
type BuildCmd struct {
	Mode              string `help:"Run mode." enum:"auto,host,isolated" default:"auto"`
	Project           string `short:"p" help:"Project root. Defaults to the working directory." type:"path" placeholder:"DIR"`
	Config            string `short:"c" help:"Configuration file. Defaults to wheelforge.yaml in the project root." type:"path" placeholder:"FILE"`
	Image             string `help:"Build image reference override." placeholder:"REF"`
	Plat              string `help:"Platform tag passed to the wheel repair tool." placeholder:"TAG"`
	Audit             string `help:"Audit failure policy: warn or strict." placeholder:"POLICY"`
	ContinueOnFailure bool   `help:"Keep building remaining variants after one fails."`
}

// Executes the build command.
//
// Dispatches on the resolved run mode: on the host, the launcher provisions
// the build container and re-invokes this same command inside it; inside the
// container, the variant build loop does the actual work.
func (c *BuildCmd) Run(ctx context.Context) error {
	m, err := mode.Parse(c.Mode)
	if err != nil {
		return err
	}

	cfg, err := c.buildConfig(m)
	if err != nil {
		return err
	}

	slog.Debug("build starting", "mode", m.String(), "image", cfg.Image, "plat", cfg.PlatformTag)

	switch m {
	case mode.Isolated:
		result, err := build.Run(ctx, build.Options{
			Config:      cfg,
			Runner:      command.ExecRunner{},
			ProjectRoot: cfg.ProjectRoot,
		})
		if result != nil {
			reportVariants(result.Variants)
		}
		return err

	default:
		return launcher.Run(ctx, launcher.Options{
			Config: cfg,
			Runner: command.ExecRunner{},
		})
	}
}

// Assembles the immutable run configuration from defaults, the optional
// config file, and flag overrides, in that order.
func (c *BuildCmd) buildConfig(m mode.Mode) (config.Config, error) {
	projectRoot := c.Project
	if projectRoot == "" {
		if m == mode.Isolated {
			projectRoot = paths.ProjectMount
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return config.Config{}, err
			}
			projectRoot = cwd
		}
	}

	cfg, err := config.Load(c.Config, projectRoot)
	if err != nil {
		return config.Config{}, err
	}

	cfg.ProjectRoot = projectRoot
	if c.Image != "" {
		cfg.Image = c.Image
	}
	if c.Plat != "" {
		cfg.PlatformTag = c.Plat
	}
	if c.Audit != "" {
		cfg.AuditPolicy = c.Audit
	}
	if c.ContinueOnFailure {
		cfg.ContinueOnVariantFailure = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// Logs the final per-variant status set.
func reportVariants(results []build.VariantResult) {
	for _, r := range results {
		switch r.Status {
		case build.StatusSucceeded:
			slog.Info("variant succeeded", "variant", r.Tag, "wheel", r.Wheel)
		case build.StatusFailed:
			slog.Error("variant failed", "variant", r.Tag, "error", r.Err)
		case build.StatusSkipped:
			slog.Info("variant skipped", "variant", r.Tag)
		}
	}
}
