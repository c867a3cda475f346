package tui

// Package-level constants to avoid magic numbers in layout code.
const (
	// fillBarWidth is the width of the "how full is the field" bar under the grid.
	fillBarWidth = 30
	// scoreboardWidth fits the rank, a full-length name and a six digit score.
	scoreboardWidth = 36
	// scoreboardHeight fits every entry of a full board without paging.
	scoreboardHeight = 12
	menuIndent       = 2
)
