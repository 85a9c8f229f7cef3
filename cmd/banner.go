package cmd

import "github.com/charmbracelet/lipgloss/v2"

const tracelensASCII = `▀█▀ █▀█ ▄▀█ █▀▀ █▀▀ █   █▀▀ █▄ █ █▀
 █  █▀▄ █▀█ █▄▄ ██▄ █▄▄ ██▄ █ ▀█ ▄█`

// RenderBanner returns the styled banner shown by the version command
func RenderBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(RGBPink).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1)

	banner := bannerStyle.Render(tracelensASCII)
	subtitle := subtitleStyle.Render("HAR and timeline analysis")

	return containerStyle.Render(banner + "\n" + subtitle)
}
