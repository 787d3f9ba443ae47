package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.Reporter = (*ReportService)(nil)

// ReportService renders a plain-text comparison of the most recent run
// of each pipeline stage against the run before it.
type ReportService struct {
	tracker driven.RunTracker
}

// NewReportService creates the reporter.
func NewReportService(tracker driven.RunTracker) *ReportService {
	return &ReportService{tracker: tracker}
}

// Report builds the run comparison for all stages.
func (s *ReportService) Report(ctx context.Context) (string, error) {
	var b strings.Builder
	b.WriteString("Pipeline run report\n")
	b.WriteString("===================\n")

	for _, step := range domain.Steps {
		runs, err := s.tracker.LastRuns(ctx, step, 2)
		if err != nil {
			return "", fmt.Errorf("reading runs for %s: %w", step, err)
		}

		fmt.Fprintf(&b, "\n%s\n", step)
		if len(runs) == 0 {
			b.WriteString("  no runs recorded\n")
			continue
		}

		last := runs[0]
		fmt.Fprintf(&b, "  last run:  %s  status=%s  in=%d out=%d skipped=%d  (%.1fs)\n",
			last.RunAt.Format("2006-01-02 15:04:05"),
			last.Status, last.ItemsIn, last.ItemsOut, last.ItemsSkipped,
			last.Duration.Seconds())
		writeMetrics(&b, last.Metrics)

		if len(runs) < 2 {
			b.WriteString("  previous:  none\n")
			continue
		}

		prev := runs[1]
		fmt.Fprintf(&b, "  previous:  %s  status=%s  in=%d out=%d skipped=%d\n",
			prev.RunAt.Format("2006-01-02 15:04:05"),
			prev.Status, prev.ItemsIn, prev.ItemsOut, prev.ItemsSkipped)
		fmt.Fprintf(&b, "  change:    out %s, skipped %s\n",
			signed(last.ItemsOut-prev.ItemsOut),
			signed(last.ItemsSkipped-prev.ItemsSkipped))
	}

	return b.String(), nil
}

// writeMetrics renders a run's metrics in stable name order.
func writeMetrics(b *strings.Builder, metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("  metrics:  ")
	for i, name := range names {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(b, "%s=%g", name, metrics[name])
	}
	b.WriteString("\n")
}

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
