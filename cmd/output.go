package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Every command reports progress through these so icons and indentation stay
// consistent. Colors switch off automatically when stdout is not a terminal
// or NO_COLOR is set.
//
// Icon semantics:
//   ✓  success
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ~  neutral info / progress

var (
	okColor      = color.New(color.FgGreen)
	errColor     = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	sectionColor = color.New(color.Bold)
)

// printSection prints a top-level section header, e.g. "=== embedprep doctor ===".
func printSection(title string) {
	fmt.Printf("\n%s\n", sectionColor.Sprintf("=== %s ===", title))
}

// printLine writes "  <icon>  msg" or "  <icon>  [name] msg".
func printLine(w io.Writer, c *color.Color, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", c.Sprint(icon), msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", c.Sprint(icon), name, msg)
	}
}

func printOK(name, msg string) {
	printLine(os.Stdout, okColor, "✓", name, msg)
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	printLine(os.Stderr, errColor, "✗", name, msg)
}

func printWarn(name, msg string) {
	printLine(os.Stdout, warnColor, "⚠", name, msg)
}

func printInfo(name, msg string) {
	printLine(os.Stdout, infoColor, "~", name, msg)
}
