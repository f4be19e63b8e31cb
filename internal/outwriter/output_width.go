package outwriter

import (
	"os"

	"github.com/huangsam/cybercompass/internal/contract"
	"golang.org/x/term"
)

// Bounds for free text columns such as titles and training values.
const (
	minTextWidth = 20
	maxTextWidth = 80
)

// GetTerminalWidth returns the width override, the detected terminal width,
// or 80 when neither is available.
func GetTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return w
}

// GetMaxTableTextWidth returns the space left for one free text column after
// reserving fixed for the other columns, borders and padding.
func GetMaxTableTextWidth(cfg *contract.Config, fixed int) int {
	available := GetTerminalWidth(cfg) - fixed
	return max(minTextWidth, min(maxTextWidth, available))
}
