package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// FormatTimeline renders a parsed timeline.
	FormatTimeline(ctx context.Context, report *TimelineReport, w io.Writer) error

	// FormatFrames renders resolved positions.
	FormatFrames(ctx context.Context, report *FramesReport, w io.Writer) error

	// FormatInspection renders an inspection report.
	FormatInspection(ctx context.Context, report *InspectionReport, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables extra detail such as skipped line samples.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}
