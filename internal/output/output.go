// Package output provides styled terminal output for the Stencil CLI.
//
// Functions use lipgloss for styling but abstract away the details from
// callers, so the scaffolding pipeline never touches escape codes directly.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// Called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Created package: send_email")
func Success(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

// Error prints an error message in red.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Println(errorStyle.Render("✘ " + msg))
}

// Warning prints a non-fatal notice in yellow. Generation continues after a
// warning; use Error for anything that aborts the run.
func Warning(msg string) {
	fmt.Println(warnStyle.Render("⚠ " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd send_email")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("· " + msg))
	}
}
