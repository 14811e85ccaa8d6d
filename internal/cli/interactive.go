package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apresai/adgenius/internal/answers"
)

// menuItem represents a single questionnaire answer in the TUI.
type menuItem struct {
	question answers.Question
	label    string
	hint     string
	value    string
	options  []menuOption
	required bool
	editing  bool
	cursor   int // cursor within options when editing
}

type menuOption struct {
	label string
	value string
}

// menuState tracks which phase the TUI is in.
type menuState int

const (
	stateMenu menuState = iota
	stateEditing
)

// tuiModel is the Bubble Tea model for the questionnaire.
type tuiModel struct {
	items     []menuItem
	cursor    int
	state     menuState
	width     int
	err       error
	confirmed bool
	cancelled bool
}

// style constants
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	menuLabelStyle = lipgloss.NewStyle().
			Width(22).
			Align(lipgloss.Right).
			MarginRight(2)

	menuValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	menuValueDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true).
				PaddingLeft(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 3)

	buttonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	headerBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)
)

var questionHints = map[answers.Question]string{
	answers.ProblemSolution:     "(what problem does the product solve?)",
	answers.CustomerStories:     "(who buys it, in their words)",
	answers.PurchaseInvolvement: "(pick one)",
	answers.BudgetGoals:         "(optional)",
	answers.Competition:         "(optional)",
	answers.CustomerContext:     "(where is it used? home, office, outdoor)",
	answers.EmotionalJourney:    "(how customers feel before and after)",
	answers.BrandAssets:         "(optional)",
	answers.PastPerformance:     "(optional)",
	answers.KeyUnderstanding:    "(optional)",
}

var involvementOptions = []menuOption{
	{label: "High - customers research and compare", value: "high involvement, extensive research"},
	{label: "Low - quick or impulse purchase", value: "low involvement, impulse purchase"},
}

func initialTUIModel() tuiModel {
	var items []menuItem
	for q := answers.ProblemSolution; q <= answers.KeyUnderstanding; q++ {
		item := menuItem{
			question: q,
			label:    q.Label(),
			hint:     questionHints[q],
			required: q == answers.ProblemSolution,
		}
		if q == answers.PurchaseInvolvement {
			item.options = involvementOptions
		}
		items = append(items, item)
	}
	// Generate button
	items = append(items, menuItem{label: "Generate"})
	return tuiModel{items: items}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) generateIdx() int {
	return len(m.items) - 1
}

func (m tuiModel) isTextInput(idx int) bool {
	return idx < m.generateIdx() && len(m.items[idx].options) == 0
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateEditing:
			return m.updateEditing(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.generateIdx() {
			m.cursor++
		}
	case "enter", " ":
		m.err = nil
		if m.cursor == m.generateIdx() {
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
		item := &m.items[m.cursor]
		item.editing = true
		item.cursor = 0
		for j, opt := range item.options {
			if opt.value == item.value {
				item.cursor = j
			}
		}
		m.state = stateEditing
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := &m.items[m.cursor]

	if m.isTextInput(m.cursor) {
		switch msg.String() {
		case "enter":
			item.value = strings.TrimSpace(item.value)
			item.editing = false
			m.state = stateMenu
			if m.cursor < m.generateIdx() {
				m.cursor++
			}
		case "esc":
			item.editing = false
			m.state = stateMenu
		case "backspace":
			if len(item.value) > 0 {
				runes := []rune(item.value)
				item.value = string(runes[:len(runes)-1])
			}
		case "ctrl+u":
			item.value = ""
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				item.value += string(msg.Runes)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "enter", " ":
		item.value = item.options[item.cursor].value
		item.editing = false
		m.state = stateMenu
	case "esc":
		item.editing = false
		m.state = stateMenu
	case "up", "k":
		if item.cursor > 0 {
			item.cursor--
		}
	case "down", "j":
		if item.cursor < len(item.options)-1 {
			item.cursor++
		}
	}
	return m, nil
}

func (m tuiModel) validate() error {
	for _, item := range m.items[:m.generateIdx()] {
		if item.required && strings.TrimSpace(item.value) == "" {
			return fmt.Errorf("%s is required", item.label)
		}
	}
	return nil
}

// record converts the filled-in items into an answer record.
func (m tuiModel) record() answers.Record {
	values := make(map[answers.Question]string)
	for _, item := range m.items[:m.generateIdx()] {
		if item.value != "" {
			values[item.question] = item.value
		}
	}
	return answers.New(values)
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(headerBorder.Render(titleStyle.Render("AdGenius Questionnaire")))
	b.WriteString("\n")

	genIdx := m.generateIdx()

	for i, item := range m.items {
		isActive := m.cursor == i

		// Generate button
		if i == genIdx {
			b.WriteString("\n")
			if isActive {
				b.WriteString("  " + buttonStyle.Render(" Generate "))
			} else {
				b.WriteString("  " + buttonDimStyle.Render(" Generate "))
			}
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		if isActive {
			cursor = cursorStyle.Render("> ")
		}

		label := item.label
		if item.required {
			label = label + requiredStyle.Render("*")
		}
		renderedLabel := menuLabelStyle.Render(label)

		var renderedValue string
		switch {
		case item.editing && m.isTextInput(i):
			renderedValue = menuValueStyle.Render(item.value + "_")
		case item.value == "":
			renderedValue = menuValueDimStyle.Render(item.hint)
		default:
			displayVal := item.value
			for _, opt := range item.options {
				if opt.value == item.value {
					displayVal = opt.label
					break
				}
			}
			renderedValue = menuValueStyle.Render(displayVal)
		}

		b.WriteString(cursor + renderedLabel + " " + renderedValue + "\n")

		if item.editing && len(item.options) > 0 {
			for j, opt := range item.options {
				if j == item.cursor {
					b.WriteString(selectedOptionStyle.Render("> "+opt.label) + "\n")
				} else {
					b.WriteString(optionStyle.Render("  "+opt.label) + "\n")
				}
			}
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	switch m.state {
	case stateMenu:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | enter to edit | q to quit"))
	case stateEditing:
		if m.isTextInput(m.cursor) {
			b.WriteString(helpStyle.Render("  type answer | enter to confirm | esc to cancel | ctrl+u to clear"))
		} else {
			b.WriteString(helpStyle.Render("  j/k or arrows to pick | enter to select | esc to cancel"))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func runQuestionnaire() (answers.Record, error) {
	p := tea.NewProgram(initialTUIModel(), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return answers.Record{}, fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tuiModel)
	if final.cancelled || !final.confirmed {
		return answers.Record{}, fmt.Errorf("cancelled")
	}
	return final.record(), nil
}
