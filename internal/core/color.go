package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. The digit colors follow the classic Minesweeper palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var countColors = [9]Color{
	ColorGray,          // 0
	ColorBrightBlue,    // 1
	ColorGreen,         // 2
	ColorBrightRed,     // 3
	ColorBlue,          // 4
	ColorRed,           // 5
	ColorCyan,          // 6
	ColorBrightMagenta, // 7
	ColorWhite,         // 8
}

// CountColor returns the color of a neighbor count digit.
func CountColor(n int) Color {
	if n < 0 || n >= len(countColors) {
		return ColorDefault
	}
	return countColors[n]
}
