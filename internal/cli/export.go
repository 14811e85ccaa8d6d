package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/insight"
)

var (
	flagExportInput  string
	flagExportResult string
	flagExportOutput string
	flagExportBucket string
)

var exportCmd = &cobra.Command{
	Use:       "export <brief|copy>",
	Short:     "Render a creative brief or copy sheet as plain text",
	Long:      "Render a text export from questionnaire answers and, optionally, a saved result document. Without --result the rule-based creative is used. With --bucket the export is uploaded to S3.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(export.KindBrief), string(export.KindCopy)},
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&flagExportInput, "input", "i", "", "Answers JSON file (- for stdin)")
	exportCmd.Flags().StringVarP(&flagExportResult, "result", "r", "", "Result JSON written by generate -o")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output text file (default: stdout)")
	exportCmd.Flags().StringVar(&flagExportBucket, "bucket", "", "Upload the export to this S3 bucket (overrides EXPORT_BUCKET)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := cliLogger()

	kind, err := export.ParseKind(args[0])
	if err != nil {
		return err
	}

	var record answers.Record
	if flagExportInput != "" {
		if record, err = loadAnswers(flagExportInput, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	signals := insight.Extract(record)
	source := "claude"
	var result *creative.Result
	if flagExportResult != "" {
		if result, err = creative.Load(flagExportResult); err != nil {
			return err
		}
	} else {
		result = creative.Fallback(signals, insight.SelectStrategy(signals))
		source = "fallback"
	}

	text := export.Render(kind, export.Brief{
		Signals:   signals,
		Result:    result,
		Source:    source,
		Generated: time.Now(),
	})

	cfg, err := loadConfig(ctx, logger)
	if err != nil {
		return err
	}
	bucket := flagExportBucket
	if bucket == "" {
		bucket = cfg.ExportBucket
	}
	if bucket != "" {
		awsCfg, err := cfg.AWSConfig(ctx)
		if err != nil {
			return err
		}
		storage := export.NewStorage(s3.NewFromConfig(awsCfg), bucket, cfg.ExportBaseURL)
		key, url, err := storage.Upload(ctx, kind, text)
		if err != nil {
			return err
		}
		logger.Info("Export published", "kind", kind, "key", key)
		fmt.Fprintf(cmd.ErrOrStderr(), "  Published: %s\n", url)
	}

	if flagExportOutput != "" {
		if err := os.WriteFile(flagExportOutput, []byte(text), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  Saved: %s\n", flagExportOutput)
		return nil
	}
	if bucket == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}
	return nil
}
