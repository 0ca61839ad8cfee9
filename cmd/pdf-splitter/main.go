package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Epistemic-Technology/pdf-splitter/internal/config"
	"github.com/Epistemic-Technology/pdf-splitter/internal/export"
	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/internal/render"
)

// app is what every subcommand needs, built once the flags are parsed.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	splitter *operations.Splitter
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	splitter := operations.NewSplitter(
		render.NewRenderer(cfg.Render.Scale, log),
		export.NewExporter(log),
		log,
	)
	return &app{cfg: cfg, log: log, splitter: splitter}, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "pdf-splitter",
		Short:         "Preview the pages of a PDF and download any page as its own PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default: $PDF_SPLITTER_CONFIG)")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(mcpCmd(&configPath))
	root.AddCommand(exportCmd(&configPath))
	root.AddCommand(splitCmd(&configPath))
	root.AddCommand(infoCmd(&configPath))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
