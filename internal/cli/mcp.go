package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	riskmcp "github.com/ppiankov/toolrisk/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs toolrisk as an MCP (Model Context Protocol) server over stdio.\nExposes tools: toolrisk_evaluate, toolrisk_matrix, toolrisk_catalog.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	tr, err := loadTranslator()
	if err != nil {
		return err
	}

	cfg := riskmcp.Config{
		CatalogPath:      resolvedCatalogPath(),
		TranslationsPath: resolvedTranslationsPath(),
		DefaultLang:      displayLanguage(tr),
		Version:          version,
		Logger:           slog.Default(),
	}

	srv, err := riskmcp.New(cfg)
	if err != nil {
		return goerr.Wrap(err, "failed to create MCP server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "toolrisk MCP server running on stdio")
	fmt.Fprintln(os.Stderr)

	return srv.Run(ctx)
}
