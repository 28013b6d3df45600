package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatTimeline renders the timeline as JSON. Quiet mode emits only the summary.
func (f *JSONFormatter) FormatTimeline(ctx context.Context, report *TimelineReport, w io.Writer) error {
	if f.opts.Quiet {
		return f.encode(w, report.Summary)
	}
	return f.encode(w, report)
}

// FormatFrames renders resolved frames as JSON.
func (f *JSONFormatter) FormatFrames(ctx context.Context, report *FramesReport, w io.Writer) error {
	return f.encode(w, report)
}

// FormatInspection renders the inspection report as JSON. Skipped line
// samples are only included in verbose mode.
func (f *JSONFormatter) FormatInspection(ctx context.Context, report *InspectionReport, w io.Writer) error {
	if !f.opts.Verbose && report.Report != nil && len(report.Report.Skipped) > 0 {
		trimmed := *report.Report
		trimmed.Skipped = nil
		report = &InspectionReport{Source: report.Source, Report: &trimmed}
	}
	return f.encode(w, report)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
