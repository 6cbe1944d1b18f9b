package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/stacklok/viewport-sync/internal/replay"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format '%s' (expected %s or %s)", format, formatTable, formatJSON)
	}
}

// writeReport renders report to w in the given format
func writeReport(w io.Writer, report *replay.Report, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if _, err := fmt.Fprintf(w, "Run %s: scenario '%s', %d steps\n\n", report.RunID, report.Scenario, report.Steps); err != nil {
		return err
	}

	viewports := tablewriter.NewWriter(w)
	viewports.Header("Viewport", "Enabled", "Index", "Image", "Displays")
	for _, vp := range report.Viewports {
		if err := viewports.Append(vp.ID, strconv.FormatBool(vp.Enabled), strconv.Itoa(vp.Index),
			vp.ImageID, strconv.Itoa(vp.Displays)); err != nil {
			return err
		}
	}
	if err := viewports.Render(); err != nil {
		return err
	}

	groups := tablewriter.NewWriter(w)
	groups.Header("Group", "Enabled", "Sources", "Targets", "Distances")
	for _, g := range report.Groups {
		if err := groups.Append(g.Name, strconv.FormatBool(g.Enabled), strings.Join(g.Sources, ","),
			strings.Join(g.Targets, ","), strconv.Itoa(g.Distances)); err != nil {
			return err
		}
	}
	if err := groups.Render(); err != nil {
		return err
	}

	if len(report.Failures) == 0 {
		return nil
	}
	failures := tablewriter.NewWriter(w)
	failures.Header("Viewport", "Image", "Error")
	for _, f := range report.Failures {
		if err := failures.Append(f.Viewport, f.ImageID, f.Error); err != nil {
			return err
		}
	}
	return failures.Render()
}
