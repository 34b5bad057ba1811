package core

// Color is a foreground color for a screen cell. The platform maps each
// value to a terminal color; games only pick from this list.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorOrange // Moles
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite

	numColors
)

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return c < numColors
}
