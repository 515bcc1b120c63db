// internal/ui/ui.go
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Out receives everything printed by this package.
var Out io.Writer = color.Output

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func Success(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", green("✓"), msg)
}

func Skip(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", yellow("⏭"), msg)
}

func Warn(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", yellow("⚠"), msg)
}

func Error(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", red("✗"), msg)
}

func Info(msg string) {
	fmt.Fprintf(Out, "  %s\n", cyan(msg))
}

func Header(msg string) {
	fmt.Fprintf(Out, "\n  %s\n", bold(msg))
}

// Step prints a numbered banner for one stage of the wizard.
func Step(n, total int, title string) {
	fmt.Fprintf(Out, "\n  %s %s\n", faint(fmt.Sprintf("[%d/%d]", n, total)), bold(title))
}

// Help prints indented explanatory text under a prompt.
func Help(lines ...string) {
	for _, l := range lines {
		fmt.Fprintf(Out, "    %s\n", faint(l))
	}
}

func Result(msg string) {
	fmt.Fprintf(Out, "\n  %s\n\n", green(msg))
}
