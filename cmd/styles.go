package cmd

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
)

// Color constants matching vacuum
var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink)

	LabelStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBBlue)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(RGBGreen)

	StatusWarningStyle = lipgloss.NewStyle().
				Foreground(RGBYellow)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(RGBRed)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(RGBPink).
			Padding(0, 1)
)

// ApplyTableStyles applies the vacuum table theme
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		Foreground(RGBPink).
		Bold(true).
		Padding(0, 1)

	// static output, nothing is selected
	s.Selected = lipgloss.NewStyle()

	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)

	t.SetStyles(s)
	return t
}
