// Package grid lays text out on a fixed character-cell screen.
package grid

import "strings"

// GetGridCoords maps a linear cell index to its column and row.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Wrap splits text into rows no wider than cols runes. Newlines always
// start a new row and tabs are expanded to a single space.
func Wrap(text string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(strings.ReplaceAll(line, "\t", " "))
		if len(runes) == 0 {
			rows = append(rows, "")
			continue
		}
		for len(runes) > cols {
			rows = append(rows, string(runes[:cols]))
			runes = runes[cols:]
		}
		rows = append(rows, string(runes))
	}
	return rows
}

// Tail returns the last n rows.
func Tail(rows []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
