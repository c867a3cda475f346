package leaderboard

import (
	"encoding/json"
	"fmt"
	"io"
)

// Print writes the ranking as a numbered table to w.
func (b *Board) Print(w io.Writer) {
	if len(b.entries) == 0 {
		fmt.Fprintln(w, "Leaderboard is empty.")
		return
	}

	for i, e := range b.entries {
		fmt.Fprintf(w, "%2d. %-20s %6d\n", i+1, e.Name, e.Score)
	}
}

// PrintJSON writes the ranking as a JSON array to w.
func (b *Board) PrintJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b.Entries())
}
