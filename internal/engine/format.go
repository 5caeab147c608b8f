package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/rodaine/table"
)

var (
	plurals    = pluralize.NewClient()
	nonSlugRE  = regexp.MustCompile(`[^a-z0-9_]+`)
	underRunRE = regexp.MustCompile(`_+`)
)

// FormatEnterLines puts a title banner above the body of a room description.
func FormatEnterLines(title string, body []string) []string {
	lines := make([]string, 0, len(body)+1)
	lines = append(lines, fmt.Sprintf("=== %s ===", strings.ToUpper(title)))
	return append(lines, body...)
}

// TransitionTo builds a result that moves the player to room.
func TransitionTo(room string, msg []string) Result {
	if len(msg) == 0 {
		msg = []string{fmt.Sprintf(">> Transitioning to %s...", room)}
	}
	return Result{Next: room, Lines: append([]string(nil), msg...)}
}

// Say is a stay-in-room result.
func Say(lines ...string) Result {
	return Result{Lines: lines}
}

// Count renders "1 fragment", "3 fragments".
func Count(n int, word string) string {
	return plurals.Pluralize(word, n, true)
}

// Slug turns a display name into a key-space prefix.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = nonSlugRE.ReplaceAllString(s, "")
	s = underRunRE.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// RenderTable lays rows out in aligned columns, one display line per row.
func RenderTable(headers []string, rows [][]string) []string {
	var buf strings.Builder
	cols := make([]interface{}, len(headers))
	for i, h := range headers {
		cols[i] = h
	}
	tbl := table.New(cols...).WithWriter(&buf)
	for _, row := range rows {
		vals := make([]interface{}, len(row))
		for i, v := range row {
			vals[i] = v
		}
		tbl.AddRow(vals...)
	}
	tbl.Print()

	var lines []string
	for _, l := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		lines = append(lines, "   "+strings.TrimRight(l, " "))
	}
	return lines
}
