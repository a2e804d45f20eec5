package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/wizard"
)

// Every asynchronous result carries the generation of the screen that
// requested it. The app drops results whose screen has since been left.

type outcomeMsg struct {
	gen     uint64
	outcome wizard.Outcome
}

type healthMsg struct {
	gen     uint64
	healthy bool
}

type censusMsg struct {
	gen    uint64
	result api.CensusResult
}

// navigateMsg asks the app to switch screens
type navigateMsg struct {
	screen Screen
}

func navigate(s Screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{screen: s} }
}
