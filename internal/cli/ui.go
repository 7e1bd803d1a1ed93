package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/searchspace/pkg/experiment"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleBest = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Instance Stats
// =============================================================================

// printInstance prints a one-line summary of the generated problem instance.
func printInstance(p experiment.ProblemConfig, initialCost float64) {
	line := fmt.Sprintf("%s instance · size %d · seed %d · initial cost %s",
		p.Kind, p.Size, p.Seed, formatCost(initialCost))
	fmt.Println("  " + StyleDim.Render(line))
}

// =============================================================================
// Result Table
// =============================================================================

// printReport renders the sweep report as a table, marking the lowest-cost
// algorithm and any cached rows.
func printReport(report *experiment.Report) {
	bestCost := report.InitialCost
	for _, r := range report.Results {
		if r.Err == "" && r.Cost < bestCost {
			bestCost = r.Cost
		}
	}

	rows := make([][]string, 0, len(report.Results))
	bestRows := make(map[int]bool)
	for i, r := range report.Results {
		cost := formatCost(r.Cost)
		status := iconFresh
		if r.Cached {
			status = iconCached
		}
		if r.Err != "" {
			cost = "-"
			status = r.Err
		} else if r.Cost == bestCost {
			bestRows[i] = true
		}
		rows = append(rows, []string{
			r.Label,
			cost,
			strconv.Itoa(r.Expanded),
			strconv.Itoa(r.Generated),
			r.Duration.Round(time.Microsecond).String(),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Algorithm", "Cost", "Expanded", "Generated", "Time", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if bestRows[row] {
				if col == 1 {
					return styleBest
				}
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			if col == 5 {
				if row < len(report.Results) && report.Results[row].Cached {
					return styleCached
				}
				return styleComputed
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())

	if report.Baseline != nil {
		gap := bestCost - report.Baseline.Cost
		line := fmt.Sprintf("optimum %s (hungarian) · best gap %s",
			formatCost(report.Baseline.Cost), formatCost(gap))
		fmt.Println("  " + StyleDim.Render(line))
	}
}

// formatCost renders a cost with a fixed, comparison-friendly precision.
func formatCost(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
