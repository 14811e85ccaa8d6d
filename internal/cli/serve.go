package cli

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/mcpserver"
	"github.com/apresai/adgenius/internal/observability"
	"github.com/apresai/adgenius/internal/server"
)

var (
	flagServePort int
	flagMCPStdio  bool
	flagMCPPort   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP generation API",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server (streamable HTTP, or stdio with --stdio)",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	serveCmd.Flags().IntVarP(&flagServePort, "port", "p", 0, "Listen port (overrides PORT)")
	mcpCmd.Flags().BoolVar(&flagMCPStdio, "stdio", false, "Serve MCP over stdin/stdout")
	mcpCmd.Flags().IntVarP(&flagMCPPort, "port", "p", 8000, "Listen port for streamable HTTP")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := observability.InitLogger()

	svc, cfg, err := newService(ctx, logger, false, nil)
	if err != nil {
		return err
	}

	var storage *export.Storage
	if cfg.ExportBucket != "" {
		awsCfg, err := cfg.AWSConfig(ctx)
		if err != nil {
			return err
		}
		storage = export.NewStorage(s3.NewFromConfig(awsCfg), cfg.ExportBucket, cfg.ExportBaseURL)
	}

	port := cfg.Port
	if flagServePort > 0 {
		port = flagServePort
	}
	srv := server.New(server.Config{
		Port:           port,
		AllowedOrigins: cfg.AllowedOrigins(),
		Version:        Version,
	}, svc, storage, logger)
	return srv.Start(ctx)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := observability.InitLogger()

	svc, _, err := newService(ctx, logger, false, nil)
	if err != nil {
		return err
	}

	srv := mcpserver.New(mcpserver.Config{Port: flagMCPPort, Version: Version}, svc, logger)
	if flagMCPStdio {
		return srv.ServeStdio(ctx)
	}
	return srv.Start(ctx)
}
