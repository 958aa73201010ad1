package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-odk-sync/internal/app"
	"github.com/MKhiriev/go-odk-sync/models"
)

var (
	reportBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	reportHintStyle  = lipgloss.NewStyle().Faint(true)
)

var reportHeader = []string{"Table", "Outcome", "Pulled", "Pushed", "Conflicts", "Message"}

// RenderReport formats result as a per-table summary.
func RenderReport(result *models.SyncResult) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(reportTitleStyle.Render("SYNC " + string(result.AppLevelOutcome)))
	b.WriteString("\n")
	b.WriteString(reportHintStyle.Render(runLine(result)))
	b.WriteString("\n")
	if result.AppLevelMessage != "" {
		b.WriteString(result.AppLevelMessage)
		b.WriteString("\n")
	}
	if hint := app.OutcomeMessage(result.AppLevelOutcome); hint != "" {
		b.WriteString(reportHintStyle.Render("hint: " + hint))
		b.WriteString("\n")
	}

	tables := result.Tables()
	if len(tables) == 0 {
		b.WriteString("\n-")
		return reportBoxStyle.Render(b.String())
	}

	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, []string{
			t.TableID,
			string(t.Outcome),
			fmt.Sprintf("+%d -%d", t.ServerUpserts, t.ServerDeletes),
			fmt.Sprintf("+%d ~%d -%d", t.LocalInserts, t.LocalUpdates, t.LocalDeletes),
			fmt.Sprintf("%d", t.LocalConflicts),
			t.Message,
		})
	}

	widths := columnWidths(reportHeader, rows)
	b.WriteString("\n")
	writeRow(&b, widths, reportHeader)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("─┼─")
		}
		b.WriteString(strings.Repeat("─", w))
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(&b, widths, row)
	}
	writeHints(&b, tables)

	return reportBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// NewReportWriter returns a result callback that prints every report to w.
func NewReportWriter(w io.Writer) func(*models.SyncResult) {
	return func(result *models.SyncResult) {
		fmt.Fprintln(w, RenderReport(result))
	}
}

// writeHints lists one hint per distinct unsuccessful table outcome.
func writeHints(b *strings.Builder, tables []*models.TableLevelResult) {
	seen := make(map[models.SyncOutcome]bool)
	for _, t := range tables {
		hint := app.OutcomeMessage(t.Outcome)
		if hint == "" || seen[t.Outcome] {
			continue
		}
		if len(seen) == 0 {
			b.WriteString("\n")
		}
		seen[t.Outcome] = true
		b.WriteString(reportHintStyle.Render(fmt.Sprintf("%s: %s", t.Outcome, hint)))
		b.WriteString("\n")
	}
}

func runLine(result *models.SyncResult) string {
	line := "run " + result.RunID
	if !result.StartedAt.IsZero() && !result.FinishedAt.IsZero() {
		line += " in " + result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String()
	}
	if p := result.Privileges; p != nil && p.UserID != "" {
		line += " as " + p.UserID
	}
	return line
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
	}
	b.WriteString("\n")
}
