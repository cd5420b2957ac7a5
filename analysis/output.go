package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var csvHeader = []string{
	"scenario", "map", "from", "to", "start", "goal",
	"astar_cost", "dijkstra_cost", "astar_expansions", "dijkstra_expansions",
	"astar_seconds", "dijkstra_seconds", "improvement_pct", "status", "error",
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Scenario, r.Map, r.From, r.To,
			strconv.Itoa(int(r.Start)), strconv.Itoa(int(r.Goal)),
			strconv.FormatInt(r.AStarCost, 10), strconv.FormatInt(r.DijkstraCost, 10),
			strconv.Itoa(r.AStarExpansions), strconv.Itoa(r.DijkstraExpansions),
			strconv.FormatFloat(r.AStarTime.Seconds(), 'f', 6, 64),
			strconv.FormatFloat(r.DijkstraTime.Seconds(), 'f', 6, 64),
			strconv.FormatFloat(r.Improvement, 'f', 2, 64),
			string(r.Status), r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("42"))
	warnStyle   = cellStyle.Foreground(lipgloss.Color("214"))
	errorStyle  = cellStyle.Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

const statusCol = 7

// RenderTable draws records as a terminal table.
func RenderTable(records []Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Scenario,
			fmt.Sprintf("%d→%d", r.Start, r.Goal),
			costCell(r.AStarCost),
			strconv.Itoa(r.AStarExpansions),
			strconv.Itoa(r.DijkstraExpansions),
			fmt.Sprintf("%.2f%%", r.Improvement),
			fmt.Sprintf("%.3fs / %.3fs", r.AStarTime.Seconds(), r.DijkstraTime.Seconds()),
			string(r.Status),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("SCENARIO", "NODES", "COST", "A* EXP", "DIJKSTRA EXP", "SAVED", "TIME A*/DIJ", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col != statusCol || row < 0 || row >= len(records) {
				return cellStyle
			}
			switch records[row].Status {
			case StatusOK, StatusIdentity, StatusUnreachable:
				return okStyle
			case StatusNoPath, StatusError:
				return warnStyle
			default:
				return errorStyle
			}
		})

	return t.String()
}

func costCell(c int64) string {
	if c < 0 {
		return "-"
	}
	return strconv.FormatInt(c, 10)
}
