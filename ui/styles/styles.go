package styles

import "github.com/charmbracelet/lipgloss"

const (
	accent  = lipgloss.Color("62")
	muted   = lipgloss.Color("241")
	errRed  = lipgloss.Color("196")
	okGreen = lipgloss.Color("42")
	warm    = lipgloss.Color("214")
)

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 1)
}

func InputStyle(width int, focused bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if focused {
		border = accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(width-4, 10))
}

func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(1)
}

func DisabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Italic(true)
}

func FieldErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(errRed).
		PaddingLeft(2)
}

func BalanceStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(okGreen).
		PaddingLeft(1)
}

func ConfirmStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(warm).
		Padding(1, 2).
		Width(max(width-4, 20))
}

func HighlightStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(warm).
		Bold(true)
}

func LegendStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(muted).
		Padding(0, 2)
}

func StatusStyle(width int, isError bool) lipgloss.Style {
	fg := muted
	if isError {
		fg = errRed
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}
