package pipeline

import (
	"github.com/jfache/nivo/pkg/calendar"
)

// =============================================================================
// Layout Computation
// =============================================================================

// ComputeLayout computes the calendar geometry for the options without
// caching. Callers that want layout caching should go through
// [Runner.ComputeLayout] instead.
func ComputeLayout(opts Options) (calendar.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return calendar.Layout{}, err
	}
	cfg, err := opts.LayoutConfig()
	if err != nil {
		return calendar.Layout{}, err
	}
	return calendar.ComputeLayout(cfg), nil
}
