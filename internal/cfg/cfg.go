package cfg

import (
	"errors"
	"flag"
	"strings"
)

// DefaultSeparator joins a panel title and its descriptor. Its presence in a
// title also marks the title as already annotated.
const DefaultSeparator = " — "

// Config adds annotator-specific configuration fields to the
// common cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DashboardsDir  string
	TitleSeparator string
	DryRun         bool
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DashboardsDir, "dashboards-dir", "", "directory containing Grafana dashboard JSON files")
	fs.StringVar(&c.TitleSeparator, "title-separator", DefaultSeparator, "separator between a panel title and its descriptor")
	fs.BoolVar(&c.DryRun, "dry-run", false, "classify and report without writing any files")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Dashboards directory is required, there is no sensible default
	if c.DashboardsDir == "" {
		errs = append(errs, errors.New("DASHBOARDS_DIR is required"))
	}

	// A whitespace-only separator would collide with the blank-title guard
	if strings.TrimSpace(c.TitleSeparator) == "" {
		errs = append(errs, errors.New("TITLE_SEPARATOR must contain a non-whitespace character"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
