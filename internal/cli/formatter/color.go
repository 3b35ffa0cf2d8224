package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// InstallStyle returns the style used for an installation status.
func InstallStyle(s domain.InstallStatus) lipgloss.Style {
	switch s {
	case domain.StatusInstalled:
		return StyleGreen
	case domain.StatusCannotInstall:
		return StyleRed
	case domain.StatusPending:
		return StyleYellow
	default:
		return StyleFg
	}
}

// InstallIndicator returns a colored status indicator such as "● INSTALLED".
func InstallIndicator(s domain.InstallStatus) string {
	switch s {
	case domain.StatusInstalled:
		return StyleGreen.Render("● INSTALLED")
	case domain.StatusCannotInstall:
		return StyleRed.Render("✖ CANNOT INSTALL")
	case domain.StatusPending:
		return StyleYellow.Render("○ PENDING")
	default:
		return StyleDim.Render("· UNSET")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
