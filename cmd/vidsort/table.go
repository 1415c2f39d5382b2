package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vidsort/internal/deps"
)

var dependencyHeaders = table.Row{"Name", "Command", "Status", "Path"}

// renderDependencyTable lists each external program with its state. A
// disabled preview is reported as such rather than as missing.
func renderDependencyTable(statuses []deps.Status, previewEnabled bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(dependencyHeaders)
	for _, row := range dependencyRows(statuses, previewEnabled) {
		tw.AppendRow(table.Row{row[0], row[1], row[2], row[3]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignLeft, Transformer: text.Transformer(func(v any) string {
			return statusCell(v)
		})},
	})
	return tw.Render()
}

func dependencyRows(statuses []deps.Status, previewEnabled bool) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "available"
		switch {
		case !previewEnabled:
			state = "disabled"
		case !status.Available:
			state = "missing"
		}
		path := status.Path
		if path == "" {
			path = status.Detail
		}
		rows = append(rows, []string{status.Name, status.Command, state, path})
	}
	return rows
}

func statusCell(v any) string {
	s, _ := v.(string)
	if s == "missing" {
		return "missing (optional)"
	}
	return s
}
