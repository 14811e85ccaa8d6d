package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/generation"
	"github.com/apresai/adgenius/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate ad creative prompts from questionnaire answers",
	Long:  "Read questionnaire answers (a JSON object keyed \"1\"-\"10\", optionally wrapped as {\"answers\": {...}}) and produce strategy, video, image and copy prompts.",
	RunE:  runGenerate,
}

var (
	flagInput   string
	flagOutput  string
	flagOffline bool
	flagTUI     bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Answers JSON file (- for stdin)")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the result document to this file instead of printing the response")
	generateCmd.Flags().BoolVar(&flagOffline, "offline", false, "Skip the remote model and use rule-based generation")
	generateCmd.Flags().BoolVarP(&flagTUI, "tui", "t", false, "Fill in the questionnaire interactively and browse the result")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := cliLogger()

	var record answers.Record
	var err error
	switch {
	case flagInput != "":
		record, err = loadAnswers(flagInput, cmd.InOrStdin())
	case flagTUI:
		record, err = runQuestionnaire()
	default:
		return fmt.Errorf("--input (-i) is required unless --tui is set")
	}
	if err != nil {
		return err
	}

	// Progress bar when not in verbose or TUI mode
	var renderer *progress.BarRenderer
	var onProgress progress.Callback
	if !flagVerbose && !flagTUI {
		renderer = progress.NewBarRenderer(os.Stderr)
		onProgress = renderer.Handle
	}

	svc, _, err := newService(ctx, logger, flagOffline, onProgress)
	if err != nil {
		return err
	}

	resp := svc.Generate(ctx, record)
	if renderer != nil {
		renderer.Finish()
	}

	if flagOutput != "" {
		if err := creative.Save(resp.Data, flagOutput); err != nil {
			return err
		}
	}

	switch {
	case flagTUI:
		if err := runViewer(resp); err != nil {
			return err
		}
	case flagOutput != "":
		printSummary(cmd.ErrOrStderr(), resp, flagOutput)
	default:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		printSummary(cmd.ErrOrStderr(), resp, "")
	}

	if err := resp.MarkRendered(); err != nil {
		logger.Warn("Attempt state", "error", err)
	}
	return nil
}

// loadAnswers reads an answer record from a file or stdin. A top-level
// "answers" object is unwrapped so request bodies can be used directly.
func loadAnswers(path string, stdin io.Reader) (answers.Record, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return answers.Record{}, fmt.Errorf("read answers: %w", err)
	}

	var wrapped struct {
		Answers json.RawMessage `json:"answers"`
	}
	if json.Unmarshal(data, &wrapped) == nil {
		if a := strings.TrimSpace(string(wrapped.Answers)); strings.HasPrefix(a, "{") {
			data = wrapped.Answers
		}
	}

	r, err := answers.Parse(data)
	if err != nil {
		return answers.Record{}, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return r, nil
}

var (
	summaryLabelStyle = lipgloss.NewStyle().
				Width(12).
				Foreground(lipgloss.Color("#626262"))

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA"))
)

// badge renders the origin of a response.
func badge(resp *generation.Response) string {
	if resp.Source.Origin() == creative.OriginClaude {
		return claudeBadgeStyle.Render(" " + strings.ToUpper(string(resp.Source)) + " ")
	}
	return fallbackBadgeStyle.Render(" " + strings.ToUpper(string(resp.Source)) + " ")
}

func printSummary(w io.Writer, resp *generation.Response, savedTo string) {
	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", summaryLabelStyle.Render(label), summaryValueStyle.Render(value))
	}

	fmt.Fprintf(w, "\n  %s  %s\n\n", titleStyle.Render("AdGenius"), badge(resp))
	row("Product", resp.Context.ProductName)
	row("Category", resp.Context.Category)
	row("Strategy", resp.Data.Strategy.Approach+" ("+resp.Data.Strategy.Ratio+")")
	row("Triggers", strings.Join(resp.Context.Triggers, ", "))
	if len(resp.Data.Copy.Headlines) > 0 {
		row("Headline", resp.Data.Copy.Headlines[0])
	}
	row("Attempt", resp.AttemptID)
	if resp.Error != "" {
		fmt.Fprintf(w, "\n  %s\n", errorStyle.Render("Remote generation failed: "+resp.Error))
	}
	if savedTo != "" {
		fmt.Fprintf(w, "\n  Saved: %s\n", savedTo)
	}
	fmt.Fprintln(w)
}
