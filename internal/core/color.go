package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Predefined colors for drawn entities.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorBlue
	ColorRed
	ColorGray
)
