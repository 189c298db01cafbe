package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uplink/internal/version"
)

// Application branding constants
const (
	AppName = "UPLINK ACTIVATION PORTAL"
	Tagline = "SATELLITE NETWORK TERMINAL • SECURE CONNECTION"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 60
	MaxPanelWidth     = 72
	DefaultWidth      = 80
	DefaultHeight     = 24
	DefaultBoxPadding = 2
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#F97316") // Orange
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	InfoColor      = lipgloss.Color("#3B82F6") // Blue - log timestamps
	WarningColor   = lipgloss.Color("#FFA500")
	ErrorColor     = lipgloss.Color("#FF5555")

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	FaintColor  = lipgloss.Color("#3A3A3A")
	BorderColor = lipgloss.Color("#4A4A4A")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	AccentTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(PrimaryColor).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Bold(true)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PercentStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	LogTimeStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	LogLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	LogPlaceholderStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Italic(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	FooterTaglineStyle = lipgloss.NewStyle().
				Foreground(FaintColor).
				Bold(true)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(TextColor).
			Bold(true).
			Padding(0, 3)

	AccentButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 3)

	FailedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(ErrorColor).
				Bold(true).
				Padding(0, 3)
)

// PanelStyle returns the rounded card style used for every screen.
func PanelStyle(width int, accent bool) lipgloss.Style {
	border := BorderColor
	if accent {
		border = PrimaryColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, DefaultBoxPadding).
		Width(PanelWidth(width))
}

// PanelWidth caps the card width to the terminal and MaxPanelWidth.
func PanelWidth(terminalWidth int) int {
	w := terminalWidth - 6
	if w > MaxPanelWidth {
		w = MaxPanelWidth
	}
	if w < MinTerminalWidth-6 {
		w = MinTerminalWidth - 6
	}
	return w
}

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(strings.ToUpper(text))
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// BuildHeaderContent creates header content with app name, version and the
// back hint when back navigation is available.
func BuildHeaderContent(canGoBack bool) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	if !canGoBack {
		return left
	}

	back := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render("← esc voltar")

	return lipgloss.JoinHorizontal(lipgloss.Top, back, "   ", left)
}

// RenderApplicationContainer wraps every screen: header, centered panel,
// tagline and context-sensitive help footer, filling the terminal.
func RenderApplicationContainer(panel string, helpText string, canGoBack bool, terminalWidth int, terminalHeight int) string {
	if terminalWidth <= 0 {
		terminalWidth = DefaultWidth
	}
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-2).
		Padding(0, 1).
		Render(BuildHeaderContent(canGoBack))

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-2).
		Padding(0, 1).
		Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(helpText))

	tagline := lipgloss.PlaceHorizontal(terminalWidth-2, lipgloss.Center,
		FooterTaglineStyle.Render(Tagline))

	centered := lipgloss.PlaceHorizontal(terminalWidth-2, lipgloss.Center, panel)

	// Remaining height goes to the panel area so the footer stays pinned.
	bodyHeight := terminalHeight - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(tagline)
	if bodyHeight < lipgloss.Height(centered) {
		bodyHeight = lipgloss.Height(centered)
	}
	body := lipgloss.Place(terminalWidth-2, bodyHeight, lipgloss.Center, lipgloss.Center, centered)

	inner := lipgloss.JoinVertical(lipgloss.Left, header, body, tagline, footer)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		inner,
	)
}
