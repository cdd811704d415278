package presentation

import (
	"fmt"
	"io"
	"strings"

	"exifmgr/internal/domain"
	"exifmgr/internal/gps"
	"exifmgr/internal/tags"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintValues prints one `Field: value` line per requested tag. With
// Verbose, requested tags the file lacks are listed as missing.
func (p Printer) PrintValues(requested []tags.Tag, values tags.Values) {
	width := fieldWidth(requested)
	for _, t := range tags.Unique(requested) {
		value, ok := values.Get(t)
		if !ok {
			if p.Verbose {
				fmt.Fprintf(p.Writer, "%-*s  (missing)\n", width, t.FieldName()+":")
			}
			continue
		}
		fmt.Fprintf(p.Writer, "%-*s  %s\n", width, t.FieldName()+":", value)
	}
}

func (p Printer) PrintCoordinate(file string, coord gps.Coordinate, ok bool) {
	if !ok {
		fmt.Fprintf(p.Writer, "%s: no GPS position\n", file)
		return
	}
	fmt.Fprintf(p.Writer, "%s: %s, %s\n", file, gps.FormatDecimal(coord.Lat), gps.FormatDecimal(coord.Lng))
	if p.Verbose {
		fmt.Fprintf(p.Writer, "  %s\n  %s\n", gps.Format(coord.Lat, gps.Latitude), gps.Format(coord.Lng, gps.Longitude))
	}
}

func (p Printer) PrintScan(result domain.ScanResult) {
	fmt.Fprintf(p.Writer, "Scanned %s:\n", result.Root)
	fmt.Fprintln(p.Writer)

	lines := formatScanLines(result.Items, result.Requested)
	if !p.Verbose {
		lines = truncate(lines)
	}
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}

	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Read %d image files, %d with GPS position.\n", len(result.Items), result.WithGPS)
	fmt.Fprintf(p.Writer, "Skipped %d files that are not images.\n", result.Skipped)
	if result.Failed > 0 {
		fmt.Fprintf(p.Writer, "%d files could not be read.\n", result.Failed)
	}

	if p.Verbose && result.Failed > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Errors:")
		for _, item := range result.Items {
			if item.Err != nil {
				fmt.Fprintf(p.Writer, "- %s: %v\n", item.FileMeta.RelativePath, item.Err)
			}
		}
	}
}

func (p Printer) PrintWrite(plan domain.WritePlan) {
	written := 0
	for _, item := range plan.Items {
		if item.Done {
			written++
		}
	}
	fields := make([]string, 0, len(plan.Values))
	for _, t := range plan.Values.Tags() {
		fields = append(fields, t.FieldName())
	}
	fmt.Fprintf(p.Writer, "Updated %s in %d of %d files.\n", strings.Join(fields, ", "), written, len(plan.Items))
	if p.Verbose {
		for _, item := range plan.Items {
			if item.Done {
				fmt.Fprintf(p.Writer, "- %s\n", item.FileMeta.RelativePath)
			}
		}
	}
}

func formatScanLines(items []domain.ScanItem, requested []tags.Tag) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, FormatScanItem(item, requested))
	}
	return lines
}

// FormatScanItem renders one scanned file on a single line.
func FormatScanItem(item domain.ScanItem, requested []tags.Tag) string {
	if item.Err != nil {
		return fmt.Sprintf("%s  error: %v", item.FileMeta.RelativePath, item.Err)
	}
	parts := make([]string, 0, len(requested))
	for _, t := range requested {
		if t == tags.GPSLatitude || t == tags.GPSLongitude {
			continue
		}
		if v, ok := item.Values.Get(t); ok {
			parts = append(parts, v)
		}
	}
	if item.Coordinate != nil {
		parts = append(parts, fmt.Sprintf("%s,%s", gps.FormatDecimal(item.Coordinate.Lat), gps.FormatDecimal(item.Coordinate.Lng)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s  (no tags)", item.FileMeta.RelativePath)
	}
	return fmt.Sprintf("%s  %s", item.FileMeta.RelativePath, strings.Join(parts, "  "))
}

func truncate(lines []string) []string {
	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head[:2:2], "..."), tail...)
}

func fieldWidth(list []tags.Tag) int {
	width := 0
	for _, t := range list {
		if n := len(t.FieldName()) + 1; n > width {
			width = n
		}
	}
	return width
}
