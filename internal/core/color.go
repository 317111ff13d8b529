package core

// Color is the foreground of a screen cell. The platform decides how each
// one maps to terminal colors.
type Color uint8

const (
	ColorDefault     Color = iota
	ColorRed               // ball
	ColorGreen             // player paddle
	ColorYellow            // countdown
	ColorCyan              // overlay hints
	ColorWhite             // CPU paddle
	ColorBrightWhite       // score, titles
	ColorGray              // borders
)
