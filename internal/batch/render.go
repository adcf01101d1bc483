package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/LYYYYL/AddressValidator/internal/validation"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Padding(0, 1)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 1)
)

// RenderRows draws rows as a table, valid rows in green and the rest in red
func RenderRows(rows []Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Raw Address", "House Number", "Road", "Unit", "Postcode", "Property Type", "Validation").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if rows[row].Status == validation.StatusValid {
				return validStyle
			}
			return invalidStyle
		})

	for _, r := range rows {
		t.Row(r.RawAddress, r.BlockNumber, r.StreetName, r.UnitNumber, r.PostalCode, r.PropertyType, string(r.Status))
	}
	return t.Render()
}

// RenderSummary lists status counts and the unit examples per property type
func RenderSummary(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d, skipped: %d, written: %d\n", s.Total, s.Skipped, s.Written)

	statuses := make([]string, 0, len(s.ByStatus))
	for st := range s.ByStatus {
		statuses = append(statuses, string(st))
	}
	sort.Strings(statuses)
	for _, st := range statuses {
		fmt.Fprintf(&b, "  %-28s %d\n", st, s.ByStatus[validation.Status(st)])
	}

	b.WriteString("\nProperty types where a unit was supplied:\n")
	if len(s.UnitExamples) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}
	types := make([]string, 0, len(s.UnitExamples))
	for pt := range s.UnitExamples {
		types = append(types, pt)
	}
	sort.Strings(types)
	for _, pt := range types {
		fmt.Fprintf(&b, "  %s\n", pt)
		for _, addr := range s.UnitExamples[pt] {
			fmt.Fprintf(&b, "    - %s\n", addr)
		}
	}
	return b.String()
}
