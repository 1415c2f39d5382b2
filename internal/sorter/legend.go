package sorter

import (
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Legend renders the key mapping and reserved commands shown at session start.
func (s *Sorter) Legend() string {
	return RenderLegend(s.destinations, s.undoKey, s.quitKey)
}

// RenderLegend renders destinations in key order followed by the undo and
// quit commands.
func RenderLegend(destinations map[string]string, undoKey, quitKey string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Key", "Action"})

	keys := make([]string, 0, len(destinations))
	for key := range destinations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		tw.AppendRow(table.Row{key, destinations[key]})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{undoKey, "Undo last move"})
	tw.AppendRow(table.Row{quitKey, "Quit"})

	var b strings.Builder
	b.WriteString("Current key to directory mappings:\n")
	b.WriteString(tw.Render())
	b.WriteByte('\n')
	return b.String()
}
