package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompter asks the user questions with small inline Bubble Tea programs.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles styles
	isTTY  func() bool
}

// NewPrompter creates a Prompter reading keys from in and drawing on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		panic("in is required")
	}
	if out == nil {
		panic("out is required")
	}
	return &Prompter{
		in:     in,
		out:    out,
		styles: newStyles(out),
		isTTY:  func() bool { return inputIsTerminal(in) },
	}
}

// inputIsTerminal treats readers that are not files as interactive.
func inputIsTerminal(in io.Reader) bool {
	if _, ok := in.(*os.File); !ok {
		return true
	}
	return IsTerminal(in)
}

// Select asks the user to pick one of options and returns it.
func (p *Prompter) Select(ctx context.Context, prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("select requires at least one option")
	}
	final, err := p.run(ctx, newSelectModel(prompt, options, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.options[m.cursor], nil
}

// Input asks for a line of text. The default is returned when the user
// submits an empty line.
func (p *Prompter) Input(ctx context.Context, prompt, defaultValue string) (string, error) {
	return p.readLine(ctx, newInputModel(prompt, defaultValue, false, p.styles))
}

// Secret asks for a line of text without echoing it.
func (p *Prompter) Secret(ctx context.Context, prompt string) (string, error) {
	return p.readLine(ctx, newInputModel(prompt, "", true, p.styles))
}

func (p *Prompter) readLine(ctx context.Context, model inputModel) (string, error) {
	final, err := p.run(ctx, model)
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.result(), nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if !p.isTTY() {
		return nil, ErrNotTerminal
	}
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrPromptCancelled
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// -- Select --

type selectModel struct {
	prompt    string
	options   []string
	cursor    int
	done      bool
	cancelled bool
	styles    styles
}

func newSelectModel(prompt string, options []string, st styles) selectModel {
	return selectModel{prompt: prompt, options: options, styles: st}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k", "left", "h", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "right", "l", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.cancelled {
		return m.prompt + " " + m.styles.muted.Render("cancelled") + "\n"
	}
	if m.done {
		return m.prompt + " " + m.styles.selected.Render(m.options[m.cursor]) + "\n"
	}
	var b strings.Builder
	b.WriteString(m.styles.key.Render(m.prompt) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render("▸ "+opt) + "\n")
		} else {
			b.WriteString("  " + opt + "\n")
		}
	}
	b.WriteString(m.styles.muted.Render("↑/↓: Navigate  Enter: Select  Esc: Cancel") + "\n")
	return b.String()
}

// -- Text input --

type inputModel struct {
	prompt       string
	defaultValue string
	secret       bool
	input        textinput.Model
	done         bool
	cancelled    bool
	styles       styles
}

func newInputModel(prompt, defaultValue string, secret bool, st styles) inputModel {
	ti := textinput.New()
	ti.Prompt = prompt + " "
	ti.Placeholder = defaultValue
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return inputModel{
		prompt:       prompt,
		defaultValue: defaultValue,
		secret:       secret,
		input:        ti,
		styles:       st,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		shown := m.result()
		if m.secret {
			shown = strings.Repeat("•", len([]rune(shown)))
		}
		return m.prompt + " " + shown + "\n"
	}
	if m.cancelled {
		return m.prompt + " " + m.styles.muted.Render("cancelled") + "\n"
	}
	return m.input.View() + "\n"
}

func (m inputModel) result() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return m.defaultValue
	}
	return v
}
