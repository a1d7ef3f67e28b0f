package style

import "github.com/anisan-cli/reel/color"

// Semantic colors of the player view.
var (
	AccentColor  = color.Purple
	SuccessColor = color.Green
	WarningColor = color.Yellow
	ErrorColor   = color.Red
	BorderColor  = color.Gray
)
