package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/generation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAnswers(t *testing.T) {
	bare := writeFile(t, "bare.json", `{"1":"skin serum","3":["high","research"]}`)
	r, err := loadAnswers(bare, nil)
	require.NoError(t, err)
	assert.Equal(t, "high, research", r.Text(answers.PurchaseInvolvement))

	wrapped := writeFile(t, "wrapped.json", `{"answers":{"1":"coffee grinder"}}`)
	r, err = loadAnswers(wrapped, nil)
	require.NoError(t, err)
	assert.Equal(t, "coffee grinder", r.Text(answers.ProblemSolution))

	r, err = loadAnswers("-", strings.NewReader(`{"2":"busy parents"}`))
	require.NoError(t, err)
	assert.Equal(t, "busy parents", r.Text(answers.CustomerStories))

	_, err = loadAnswers(writeFile(t, "bad.json", `[1,2]`), nil)
	assert.Error(t, err)

	_, err = loadAnswers(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorContains(t, err, "read answers")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestQuestionnaireRequiresFirstAnswer(t *testing.T) {
	m := tea.Model(initialTUIModel())
	for range answers.KeyUnderstanding {
		m = press(m, "down")
	}
	m = press(m, "enter")

	tm := m.(tuiModel)
	assert.False(t, tm.confirmed)
	require.Error(t, tm.err)
	assert.Contains(t, tm.View(), "Problem & Solution is required")
}

func TestQuestionnaireFillsRecord(t *testing.T) {
	m := tea.Model(initialTUIModel())

	// Type the first answer; enter confirms and moves to the next question.
	m = press(m, "enter", "s", "k", "i", "n", "enter")
	// Skip question 2, pick the first involvement option.
	m = press(m, "down", "enter", "enter")

	tm := m.(tuiModel)
	r := tm.record()
	assert.Equal(t, "skin", r.Text(answers.ProblemSolution))
	assert.Equal(t, involvementOptions[0].value, r.Text(answers.PurchaseInvolvement))
	assert.False(t, r.Has(answers.CustomerStories))

	for tm.cursor < tm.generateIdx() {
		m = press(m, "down")
		tm = m.(tuiModel)
	}
	m = press(m, "enter")
	assert.True(t, m.(tuiModel).confirmed)
}

func TestQuestionnaireQuit(t *testing.T) {
	m := press(tea.Model(initialTUIModel()), "q")
	assert.True(t, m.(tuiModel).cancelled)
}

func fallbackResponse(t *testing.T) *generation.Response {
	t.Helper()
	svc := generation.NewService(nil, cliLogger(), generation.Options{})
	return svc.Generate(context.Background(), answers.New(map[answers.Question]string{
		answers.ProblemSolution: "Meal prep containers for busy families",
	}))
}

func TestViewerTabs(t *testing.T) {
	resp := fallbackResponse(t)
	m := tea.Model(newViewerModel(resp))

	view := m.View()
	assert.Contains(t, view, "FALLBACK")
	assert.Contains(t, view, resp.Data.Strategy.Ratio)

	m = press(m, "2")
	assert.Contains(t, m.View(), "Context/Setting")

	m = press(m, "4")
	assert.Contains(t, m.View(), resp.Data.Copy.Headlines[0])

	// Wraps around.
	m = press(m, "l")
	assert.Equal(t, 0, m.(viewerModel).tab)
	m = press(m, "h")
	assert.Equal(t, 3, m.(viewerModel).tab)
}

func TestPrintSummary(t *testing.T) {
	resp := fallbackResponse(t)
	var buf bytes.Buffer
	printSummary(&buf, resp, "out.json")

	out := buf.String()
	assert.Contains(t, out, "FALLBACK")
	assert.Contains(t, out, resp.Context.Category)
	assert.Contains(t, out, "Remote generation failed")
	assert.Contains(t, out, "Saved: out.json")
}

func TestGenerateCommandOffline(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("SECRET_PREFIX", "")

	input := writeFile(t, "answers.json", `{"answers":{"1":"Ergonomic office chair","3":"extensive research"}}`)
	output := filepath.Join(t.TempDir(), "result.json")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"generate", "-i", input, "-o", output, "--offline", "--verbose"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagInput, flagOutput, flagOffline, flagVerbose = "", "", false, false
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	result, err := creative.Load(output)
	require.NoError(t, err)
	assert.Equal(t, "70% Rational, 30% Emotional", result.Strategy.Ratio)
	assert.Contains(t, stderr.String(), "Saved: "+output)
}

func TestExportCommand(t *testing.T) {
	t.Setenv("EXPORT_BUCKET", "")
	t.Setenv("SECRET_PREFIX", "")

	input := writeFile(t, "answers.json", `{"1":"coffee grinder"}`)
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"export", "copy", "-i", input})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		flagExportInput = ""
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.True(t, strings.HasPrefix(stdout.String(), "ADGENIUS AI - GENERATED COPY"))
}
