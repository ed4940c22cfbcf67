package sframe

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayConfig controls how frames are formatted when printed.
type DisplayConfig struct {
	// MaxRows is the maximum number of rows to display. Larger frames show
	// head and tail rows with "..." in between. Default: 10
	MaxRows int

	// MaxColWidth is the maximum width for cell content. Longer values are
	// truncated with "...". Default: 25
	MaxColWidth int

	// FloatPrecision is the number of decimal places for real values.
	// Default: 4
	FloatPrecision int

	// ShowShape controls whether the "[rows x cols]" header is displayed.
	// Default: true
	ShowShape bool
}

// DefaultDisplayConfig returns the default display configuration.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MaxRows:        10,
		MaxColWidth:    25,
		FloatPrecision: 4,
		ShowShape:      true,
	}
}

// String renders the frame with the default display configuration.
func (df *DataFrame) String() string {
	return df.Format(DefaultDisplayConfig())
}

// Format renders the frame as an aligned textual table with row labels.
func (df *DataFrame) Format(cfg DisplayConfig) string {
	if df == nil || df.handle == nil {
		return "<released data.frame>"
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 10
	}
	if cfg.MaxColWidth <= 0 {
		cfg.MaxColWidth = 25
	}
	if cfg.FloatPrecision < 0 {
		cfg.FloatPrecision = 4
	}

	nrow := df.NRow()
	ncol := df.NCol()

	var sb strings.Builder
	if cfg.ShowShape {
		fmt.Fprintf(&sb, "data.frame [%d x %d]\n", nrow, ncol)
	}
	if ncol == 0 {
		return sb.String()
	}

	names := df.Names()
	cols := make([]*Value, ncol)
	for i := 0; i < ncol; i++ {
		col, err := df.Column(i)
		if err != nil {
			for _, c := range cols[:i] {
				c.Release()
			}
			return sb.String()
		}
		cols[i] = col
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	// Pick the rows to show: all of them, or head + tail around an ellipsis.
	rowIdx := make([]int, 0, cfg.MaxRows+1)
	elided := false
	if nrow > cfg.MaxRows {
		head := (cfg.MaxRows + 1) / 2
		tail := cfg.MaxRows - head
		for i := 0; i < head; i++ {
			rowIdx = append(rowIdx, i)
		}
		for i := nrow - tail; i < nrow; i++ {
			rowIdx = append(rowIdx, i)
		}
		elided = true
	} else {
		for i := 0; i < nrow; i++ {
			rowIdx = append(rowIdx, i)
		}
	}

	labels := rowLabels(df, nrow)

	cells := make([][]string, len(rowIdx))
	for r, i := range rowIdx {
		cells[r] = make([]string, ncol)
		for j, col := range cols {
			cells[r][j] = truncate(displayCell(col, i, cfg.FloatPrecision), cfg.MaxColWidth)
		}
	}

	widths := make([]int, ncol)
	for j := 0; j < ncol; j++ {
		w := 0
		if j < len(names) {
			w = len(names[j])
		}
		for r := range cells {
			if len(cells[r][j]) > w {
				w = len(cells[r][j])
			}
		}
		widths[j] = w
	}
	labelWidth := 0
	for _, i := range rowIdx {
		if len(labels[i]) > labelWidth {
			labelWidth = len(labels[i])
		}
	}

	sb.WriteString(strings.Repeat(" ", labelWidth))
	for j := 0; j < ncol; j++ {
		name := ""
		if j < len(names) {
			name = names[j]
		}
		fmt.Fprintf(&sb, " %*s", widths[j], name)
	}
	sb.WriteByte('\n')

	half := (len(rowIdx) + 1) / 2
	for r, i := range rowIdx {
		if elided && r == half {
			fmt.Fprintf(&sb, "%-*s\n", labelWidth, "...")
		}
		fmt.Fprintf(&sb, "%-*s", labelWidth, labels[i])
		for j := 0; j < ncol; j++ {
			fmt.Fprintf(&sb, " %*s", widths[j], cells[r][j])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// rowLabels returns the printable row label for each row.
func rowLabels(df *DataFrame, nrow int) []string {
	labels := make([]string, nrow)
	if rn, ok := df.RowNames(); ok && !rn.IsCompact() && rn.Labels() != nil {
		for i, l := range rn.Labels() {
			if i >= nrow {
				break
			}
			if l == NAInteger {
				labels[i] = "NA"
			} else {
				labels[i] = strconv.FormatInt(int64(l), 10)
			}
		}
		return labels
	}
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}

func displayCell(col *Value, i int, precision int) string {
	if col.IsNA(i) {
		return "NA"
	}
	if col.Kind() == Real {
		return strconv.FormatFloat(col.RealAt(i), 'f', precision, 64)
	}
	return formatCell(col, i, "NA")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
