// Package annotate appends descriptor labels to dashboard panel titles and
// drives the batch run over a document store.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/dashnote/internal/classify"
	"github.com/linnemanlabs/dashnote/internal/dashboard"
)

// Stats aggregates what a run changed.
type Stats struct {
	Panels      int            // panels whose title was rewritten
	Dashboards  int            // documents containing at least one rewritten panel
	Descriptors map[string]int // descriptor -> panels annotated with it
}

// Service owns annotation runs over a document store.
type Service struct {
	store     dashboard.Store
	separator string
	dryRun    bool
	logger    log.Logger
}

// NewService creates a new annotation service. separator joins a title and
// its descriptor, and its presence in a title marks it as already annotated.
func NewService(store dashboard.Store, separator string, dryRun bool, logger log.Logger) *Service {
	return &Service{
		store:     store,
		separator: separator,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// Run processes every document in the store in sorted order: annotate each
// eligible panel, then save the document iff at least one of its panels
// changed. An empty store is a configuration error. Any load or save failure
// aborts the rest of the run; a partially written run is safe to re-run
// because annotated titles are skipped on the next pass.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	stats := Stats{Descriptors: make(map[string]int)}

	names, err := s.store.List(ctx)
	if err != nil {
		return stats, err
	}
	if len(names) == 0 {
		return stats, fmt.Errorf("no dashboards found")
	}

	for _, name := range names {
		doc, err := s.store.Load(ctx, name)
		if err != nil {
			return stats, err
		}

		changed := 0
		for _, panel := range doc.Panels() {
			desc, ok, err := s.updatePanel(panel)
			if err != nil {
				return stats, err
			}
			if !ok {
				continue
			}
			changed++
			stats.Descriptors[desc]++
			s.logger.Info(ctx, "annotated panel",
				"dashboard", name,
				"panel", panel.Index(),
				"descriptor", desc,
			)
		}
		if changed == 0 {
			continue
		}

		stats.Panels += changed
		stats.Dashboards++

		if s.dryRun {
			s.logger.Info(ctx, "dry run, skipping write", "dashboard", name, "panels_changed", changed)
			continue
		}
		if err := s.store.Save(ctx, doc); err != nil {
			return stats, err
		}
		s.logger.Info(ctx, "dashboard updated", "dashboard", name, "panels_changed", changed)
	}

	return stats, nil
}

// updatePanel decides eligibility, classifies, and rewrites the title in
// place. It returns the descriptor applied, or ok=false when the panel is
// left alone. Row panels, absent/non-string/blank titles, and titles that
// already contain the separator are never touched.
func (s *Service) updatePanel(panel dashboard.Panel) (desc string, ok bool, err error) {
	if panel.Type() == "row" {
		return "", false, nil
	}
	title, isString := panel.Title()
	if !isString || strings.TrimSpace(title) == "" {
		return "", false, nil
	}
	if strings.Contains(title, s.separator) {
		return "", false, nil
	}

	desc, ok = classify.Descriptor(title, panel.Expressions())
	if !ok {
		return "", false, nil
	}

	if err := panel.SetTitle(title + s.separator + desc); err != nil {
		return "", false, err
	}
	return desc, true, nil
}
