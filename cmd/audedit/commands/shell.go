// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ik5/audedit"
	"github.com/ik5/audedit/formats"
)

// Step sizes of the shell keys.
const (
	volumeStep   = 5.0
	fasterFactor = 1.5
	slowerFactor = 0.75
	refreshEvery = 200 * time.Millisecond
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [file]",
		Short: "Edit interactively",
		Long: `Open the interactive editor, optionally loading [file] first.

Keys: o open, p play, s stop, r reverse, f faster, l slower,
+/- volume, t trim, w save, u undo, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := a.editor()
			defer ed.Close()

			m := newShellModel(ed)
			if len(args) == 1 {
				m = m.load(args[0])
			}

			p := tea.NewProgram(m,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			return err
		},
	}
}

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptTrim
	promptSave
)

func (k promptKind) label() string {
	switch k {
	case promptOpen:
		return "Open file"
	case promptTrim:
		return "Trim range (start-end ms)"
	case promptSave:
		return "Save as"
	default:
		return ""
	}
}

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// shellModel is the bubbletea model of the interactive editor. Editor
// calls run inside Update, so the editor is only touched by the program
// goroutine.
type shellModel struct {
	ed *audedit.Editor

	prompt promptKind
	input  string

	message string
	err     error

	quitting bool
}

func newShellModel(ed *audedit.Editor) shellModel {
	return shellModel{ed: ed, message: "Press o to open a file"}
}

func (m shellModel) Init() tea.Cmd {
	return tickEvery()
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		return m, tickEvery()
	}

	return m, nil
}

func (m shellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		_ = m.ed.Close()
		return m, tea.Quit

	case "o":
		return m.ask(promptOpen, m.ed.SourcePath()), nil
	case "t":
		return m.ask(promptTrim, ""), nil
	case "w":
		return m.ask(promptSave, m.ed.SourcePath()), nil

	case "p":
		return m.result("Playing", m.ed.Play()), nil
	case "s":
		status, err := m.ed.Stop()
		return m.result(capitalize(status.String()), err), nil
	case "r":
		return m.result("Reversed", m.ed.Reverse()), nil
	case "f":
		return m.result(fmt.Sprintf("Speed ×%g", fasterFactor), m.ed.ChangeSpeed(fasterFactor)), nil
	case "l":
		return m.result(fmt.Sprintf("Speed ×%g", slowerFactor), m.ed.ChangeSpeed(slowerFactor)), nil
	case "+", "=":
		return m.result(fmt.Sprintf("Volume %+g dB", volumeStep), m.ed.ChangeVolume(volumeStep)), nil
	case "-":
		return m.result(fmt.Sprintf("Volume %+g dB", -volumeStep), m.ed.ChangeVolume(-volumeStep)), nil
	case "u":
		return m.result("Undone", m.ed.Undo()), nil
	}

	return m, nil
}

func (m shellModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		_ = m.ed.Close()
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt = promptNone
		m.input = ""
		return m, nil
	case tea.KeyEnter:
		return m.submit(), nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}

	return m, nil
}

func (m shellModel) ask(kind promptKind, initial string) shellModel {
	m.prompt = kind
	m.input = initial
	return m
}

func (m shellModel) submit() shellModel {
	kind, input := m.prompt, strings.TrimSpace(m.input)
	m.prompt = promptNone
	m.input = ""

	if input == "" {
		return m
	}

	switch kind {
	case promptOpen:
		return m.load(input)

	case promptTrim:
		start, end, err := parseRange(input)
		if err != nil {
			return m.result("", fmt.Errorf("%w: %w", audedit.ErrInvalidArgument, err))
		}
		return m.result(fmt.Sprintf("Trimmed to %v-%v", start, end), m.ed.Trim(start, end))

	case promptSave:
		format := formats.FormatFromPath(input)
		if format == "" {
			return m.result("", fmt.Errorf("cannot tell the format of %q from its extension", input))
		}
		return m.result("Saved "+input, m.ed.Save(input, format))
	}

	return m
}

func (m shellModel) load(path string) shellModel {
	return m.result("Loaded "+filepath.Base(path), m.ed.Load(path))
}

func (m shellModel) result(message string, err error) shellModel {
	m.err = err
	if err == nil {
		m.message = message
	}
	return m
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

func (m shellModel) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("audedit"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	if buf := m.ed.Buffer(); buf != nil {
		row("File", filepath.Base(m.ed.SourcePath()))
		row("Format", fmt.Sprintf("%d Hz, %s, %d-bit", buf.SampleRate(), channelName(buf.Channels()), buf.BytesPerSample()*8))
		row("Length", buf.Duration().Round(time.Millisecond).String())
	} else {
		row("File", "none")
	}

	state := "stopped"
	if m.ed.IsPlaying() {
		state = "playing"
	}
	if m.ed.CanUndo() {
		state += ", undo available"
	}
	row("State", state)

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	} else {
		b.WriteString(messageStyle.Render(m.message))
	}
	b.WriteString("\n\n")

	if m.prompt != promptNone {
		b.WriteString(promptStyle.Render(m.prompt.label() + ": "))
		b.WriteString(m.input)
		b.WriteString("█\n")
		b.WriteString(helpStyle.Render("enter confirm • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("o open • p play • s stop • r reverse • f faster • l slower • +/- volume • t trim • w save • u undo • q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
