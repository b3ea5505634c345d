package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docmigrate/internal/batch"
	"git.home.luguber.info/inful/docmigrate/internal/config"
	"git.home.luguber.info/inful/docmigrate/internal/convert"
	"git.home.luguber.info/inful/docmigrate/internal/gitfetch"
	"git.home.luguber.info/inful/docmigrate/internal/lint"
	"git.home.luguber.info/inful/docmigrate/internal/logfields"
	"git.home.luguber.info/inful/docmigrate/internal/metrics"
	"git.home.luguber.info/inful/docmigrate/internal/mkdocs"
	"git.home.luguber.info/inful/docmigrate/internal/starlight"
	"git.home.luguber.info/inful/docmigrate/internal/version"
	"git.home.luguber.info/inful/docmigrate/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docmigrate.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Convert struct {
		Source string `short:"s" help:"Source tree override"`
		Output string `short:"o" help:"Output directory override"`
	} `cmd:"" help:"Convert the source tree into the destination dialect"`

	Nav struct {
		Output string `short:"o" help:"Sidebar file override"`
	} `cmd:"" help:"Convert the source navigation into sidebar JSON"`

	Fetch struct {
		Token string `help:"Token for HTTPS authentication" env:"DOCMIGRATE_TOKEN"`
	} `cmd:"" help:"Clone or update the source repository"`

	Watch struct {
		Fetch bool   `help:"Resync the source repository before each run"`
		Token string `help:"Token for HTTPS authentication" env:"DOCMIGRATE_TOKEN"`
	} `cmd:"" help:"Watch the source tree and reconvert on change"`

	Verify struct {
		Path string `arg:"" optional:"" help:"File or directory to verify (defaults to the output directory)"`
	} `cmd:"" help:"Verify converted output"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	var err error
	switch cmd := ctx.Command(); cmd {
	case "convert":
		err = withConfig(func(cfg *config.Config) error {
			return runConvert(cfg, CLI.Convert.Source, CLI.Convert.Output)
		})
	case "nav":
		err = withConfig(func(cfg *config.Config) error {
			return runNav(cfg, CLI.Nav.Output)
		})
	case "fetch":
		err = withConfig(func(cfg *config.Config) error {
			return runFetch(cfg, CLI.Fetch.Token)
		})
	case "watch":
		err = withConfig(func(cfg *config.Config) error {
			return runWatch(cfg, CLI.Watch.Fetch, CLI.Watch.Token)
		})
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "version":
		fmt.Printf("docmigrate %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	case "verify", "verify <path>":
		err = withConfig(func(cfg *config.Config) error {
			return runVerify(cfg, CLI.Verify.Path)
		})
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		slog.Error("command failed", logfields.Error(err))
		os.Exit(1)
	}
}

func withConfig(fn func(*config.Config) error) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	return fn(cfg)
}

func runConvert(cfg *config.Config, sourceOverride, outputOverride string) error {
	source := cfg.Source.Dir
	if sourceOverride != "" {
		source = sourceOverride
	}
	output := cfg.Output.Dir
	if outputOverride != "" {
		output = outputOverride
	}

	runner := batch.NewRunner(convert.New(cfg.ConvertConfig()), batch.Options{
		SourceDir: source,
		OutputDir: output,
		Extension: cfg.Output.Extension,
		Clean:     cfg.Output.Clean,
	})
	sum, err := runner.Run(context.Background())
	if err != nil {
		return err
	}
	if sum.Failed() {
		for _, docErr := range sum.Errors {
			slog.Error("document failed", logfields.Path(docErr.Path), logfields.Error(docErr.Err))
		}
		return fmt.Errorf("%d of %d documents failed", len(sum.Errors), sum.Total)
	}
	return nil
}

// sidebarDocument is the JSON shape the nav command emits.
type sidebarDocument struct {
	Tabs     []starlight.Tab        `json:"tabs"`
	Sidebars starlight.MultiSidebar `json:"sidebars"`
}

func runNav(cfg *config.Config, outputOverride string) error {
	navPath := filepath.Join(cfg.Source.Dir, cfg.Source.NavFile)
	siteCfg, err := mkdocs.Load(navPath)
	if err != nil {
		return err
	}

	items := starlight.ConvertNav(siteCfg.Nav)
	res := starlight.Partition(items, cfg.Nav.Tabs)
	for _, warning := range res.Warnings {
		slog.Warn("sidebar partitioning", slog.String("message", warning))
	}

	out := filepath.Join(cfg.Output.Dir, cfg.Output.SidebarFile)
	if outputOverride != "" {
		out = outputOverride
	}
	data, err := json.MarshalIndent(sidebarDocument{Tabs: res.Tabs, Sidebars: res.Sidebars}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sidebar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("prepare sidebar dir: %w", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write sidebar: %w", err)
	}
	slog.Info("sidebar written", logfields.Path(out), slog.Int("tabs", len(res.Tabs)))
	return nil
}

func runFetch(cfg *config.Config, token string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := gitfetch.NewClient(nil, slog.Default())
	return client.Sync(ctx, gitfetch.Options{
		URL:    cfg.Source.Repo,
		Branch: cfg.Source.Branch,
		Dir:    cfg.Source.Dir,
		Token:  token,
	})
}

func runWatch(cfg *config.Config, fetch bool, token string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	runner := batch.NewRunner(convert.New(cfg.ConvertConfig()), batch.Options{
		SourceDir: cfg.Source.Dir,
		OutputDir: cfg.Output.Dir,
		Extension: cfg.Output.Extension,
		Clean:     cfg.Output.Clean,
		Recorder:  recorder,
	})
	fetcher := gitfetch.NewClient(recorder, slog.Default())

	run := func(ctx context.Context) error {
		if fetch && cfg.Source.Repo != "" {
			if err := fetcher.Sync(ctx, gitfetch.Options{
				URL:    cfg.Source.Repo,
				Branch: cfg.Source.Branch,
				Dir:    cfg.Source.Dir,
				Token:  token,
			}); err != nil {
				return err
			}
		}
		sum, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		if sum.Failed() {
			slog.Warn("run finished with failed documents", slog.Int("errors", len(sum.Errors)))
		}
		if _, err := os.Stat(filepath.Join(cfg.Source.Dir, cfg.Source.NavFile)); err == nil {
			return runNav(cfg, "")
		}
		return nil
	}

	svc := watch.New(run, watch.Options{
		SourceDir:   cfg.Source.Dir,
		Debounce:    cfg.Watch.DebounceDuration(),
		Resync:      cfg.Watch.ResyncDuration(),
		MetricsAddr: cfg.Watch.MetricsAddr,
		Registry:    registry,
		Recorder:    recorder,
	})
	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runVerify(cfg *config.Config, path string) error {
	wholeTree := path == ""
	if wholeTree {
		path = cfg.Output.Dir
	}
	res, err := lint.NewVerifier().VerifyPath(path)
	if err != nil {
		return err
	}

	// When verifying the whole output tree, also check that every nav page
	// slug resolves to an emitted document.
	if navPath := filepath.Join(cfg.Source.Dir, cfg.Source.NavFile); wholeTree {
		if _, statErr := os.Stat(navPath); statErr == nil {
			siteCfg, err := mkdocs.Load(navPath)
			if err != nil {
				return err
			}
			items := starlight.ConvertNav(siteCfg.Nav)
			res.Issues = append(res.Issues, lint.VerifySlugs(items, path, cfg.Output.Extension)...)
		}
	}
	for _, issue := range res.Issues {
		attrs := []any{logfields.Path(issue.FilePath), slog.String("rule", issue.Rule)}
		if issue.Line > 0 {
			attrs = append(attrs, slog.Int("line", issue.Line))
		}
		switch issue.Severity {
		case lint.SeverityError:
			slog.Error(issue.Message, attrs...)
		default:
			slog.Warn(issue.Message, attrs...)
		}
	}
	slog.Info("verification finished",
		logfields.Files(res.FilesTotal),
		slog.Int("errors", res.ErrorCount()),
		logfields.Warnings(res.WarningCount()))
	if res.HasErrors() {
		return fmt.Errorf("%d documents have errors", res.ErrorCount())
	}
	return nil
}
