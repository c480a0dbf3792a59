// flipbot/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	keyColor     = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

func ColorKey(s string) string {
	return keyColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorDim(s string) string {
	return dimColor.Sprint(s)
}

// Disable turns colors off for every helper in this package.
func Disable() {
	color.NoColor = true
}
