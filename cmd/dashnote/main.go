// Dashnote annotates Grafana dashboard panel titles with a short descriptor
// of the quantity each panel displays, inferred from the panel's PromQL
// expressions and title text.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/linnemanlabs/go-core/cfg"
	"github.com/linnemanlabs/go-core/log"
	v "github.com/linnemanlabs/go-core/version"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/dashnote/internal/annotate"
	dc "github.com/linnemanlabs/dashnote/internal/cfg"
	"github.com/linnemanlabs/dashnote/internal/dashboard/fsstore"
)

const appName = "dashnote"
const component = "annotator"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal error:", err)
		os.Exit(1)
	}
}

func run() error {
	// single-pass batch job: runs to completion or fails outright, no
	// cancellation semantics
	ctx := context.Background()

	// Set app name and component
	v.AppName = appName
	v.Component = component

	// Get build/version info
	vi := v.Get()

	// each package registers its own flags and options struct
	var (
		appCfg dc.Config
		logCfg log.Config
	)
	appCfg.RegisterFlags(flag.CommandLine)
	logCfg.RegisterFlags(flag.CommandLine)
	var showVersion bool
	flag.BoolVar(&showVersion, "V", false, "Print version+build information and exit")

	// parse flags to get config values from cmdline, we check env vars next which do not override cmdline flags
	flag.Parse()
	if showVersion {
		fmt.Printf(
			"%s (%s) %s (commit=%s, commit_date=%s, build_id=%s, build_date=%s, go=%s, dirty=%v)\n",
			vi.AppName, vi.Component, vi.Version, vi.Commit, vi.CommitDate, vi.BuildId, vi.BuildDate, vi.GoVersion,
			vi.VCSDirty != nil && *vi.VCSDirty,
		)
		return nil
	}

	// Fill in config values from environment variables with prefix DASHNOTE_,
	// these do not override cmdline flags
	cfg.FillFromEnv(flag.CommandLine, "DASHNOTE_", func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})

	if err := errors.Join(
		appCfg.Validate(),
		logCfg.Validate(),
	); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// initialize logger early
	lg, err := log.New(logCfg.ToOptions(v.AppName))
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	// tag every log line of this batch run with a fresh run ID so a given
	// run's lines correlate in aggregated logs
	runID := ulid.Make().String()
	L := lg.With("component", vi.Component, "run_id", runID)

	// add logger to context
	ctx = log.WithContext(ctx, L)

	L.Info(ctx, "starting annotation run",
		"version", vi.Version,
		"commit", vi.Commit,
		"go_version", vi.GoVersion,
		"dashboards_dir", appCfg.DashboardsDir,
		"title_separator", appCfg.TitleSeparator,
		"dry_run", appCfg.DryRun,
	)

	store := fsstore.New(appCfg.DashboardsDir)
	svc := annotate.NewService(store, appCfg.TitleSeparator, appCfg.DryRun, L)

	stats, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	L.Info(ctx, "annotation run complete",
		"panels_changed", stats.Panels,
		"dashboards_changed", stats.Dashboards,
		"descriptors", stats.Descriptors,
	)

	fmt.Println(summaryLine(stats))
	return nil
}

// summaryLine formats the one-line stdout summary for a finished run.
func summaryLine(stats annotate.Stats) string {
	return fmt.Sprintf("updated %d panels across %d dashboards", stats.Panels, stats.Dashboards)
}
