package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/generation"
)

var tabNames = []string{"Strategy", "Video", "Images", "Copy"}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262")).
				Padding(0, 2)

	claudeBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1A1A1A")).
				Background(lipgloss.Color("#04B575"))

	fallbackBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1A1A1A")).
				Background(lipgloss.Color("#F2B705"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	bodyStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// viewerModel shows one generated response in tabs.
type viewerModel struct {
	resp  *generation.Response
	tab   int
	width int
}

func newViewerModel(resp *generation.Response) viewerModel {
	return viewerModel{resp: resp}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			m.tab = (m.tab + 1) % len(tabNames)
		case "left", "h", "shift+tab":
			m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
		case "1", "2", "3", "4":
			m.tab = int(msg.String()[0] - '1')
		}
	}
	return m, nil
}

func (m viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AdGenius") + "  " + badge(m.resp) + "\n\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	b.WriteString(headerBorder.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n")

	body := bodyStyle
	if m.width > 4 {
		body = body.Width(m.width - 4)
	}
	b.WriteString(body.Render(m.tabContent()))
	b.WriteString("\n")

	if m.resp.Error != "" {
		b.WriteString("\n" + errorStyle.Render("  Remote generation failed: "+m.resp.Error) + "\n")
	}
	b.WriteString(helpStyle.Render("  left/right or 1-4 to switch tabs | q to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m viewerModel) tabContent() string {
	d := m.resp.Data
	var b strings.Builder
	section := func(title, text string) {
		b.WriteString(sectionStyle.Render(title) + "\n" + text + "\n\n")
	}

	switch m.tab {
	case 0:
		section("Approach", d.Strategy.Approach)
		section("Ratio", d.Strategy.Ratio)
		section("Psychology", d.Strategy.Psychology)
	case 1:
		b.WriteString(creative.FormatVideoPrompt(d.Video))
	case 2:
		for _, img := range []struct {
			label string
			spec  creative.ImageSpec
		}{
			{"Hero", d.Images.Hero},
			{"Lifestyle", d.Images.Lifestyle},
			{"Social", d.Images.Social},
		} {
			section(img.label, img.spec.Prompt+"\nStyle: "+img.spec.Style)
		}
	case 3:
		var headlines strings.Builder
		for i, h := range d.Copy.Headlines {
			fmt.Fprintf(&headlines, "%d. %s\n", i+1, h)
		}
		section("Headlines", strings.TrimRight(headlines.String(), "\n"))
		section("Body", d.Copy.BodyCopy.Opening+"\n"+d.Copy.BodyCopy.Middle+"\n"+d.Copy.BodyCopy.Closing)
		section("Calls to action", "- "+strings.Join(d.Copy.CTAs, "\n- "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func runViewer(resp *generation.Response) error {
	p := tea.NewProgram(newViewerModel(resp), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
