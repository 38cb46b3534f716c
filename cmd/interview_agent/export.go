package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
	"github.com/jonkmatsumo/interview-agent/internal/export"
	"github.com/jonkmatsumo/interview-agent/internal/persist"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a conversation as a standalone HTML transcript",
	RunE:  runExport,
}

var (
	exportConfigPath string
	exportStorePath  string
	exportMode       string
	exportOut        string
)

func init() {
	exportCmd.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file")
	exportCmd.Flags().StringVar(&exportStorePath, "store", "", "SQLite file holding local conversation history (required)")
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", "chat", "Chat mode to export")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output HTML file (required)")

	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	mode, ok := chat.ModeByID(exportMode)
	if !ok {
		return fmt.Errorf("unknown mode %q; try the modes command", exportMode)
	}

	cfg, err := loadConfig(cmd, exportConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		cfg.StorePath = exportStorePath
	}
	if cfg.StorePath == "" {
		return fmt.Errorf("--store is required; transcripts are read from the local history file")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap := persist.LoadSnapshot(context.Background(), store, chat.SnapshotKey(mode.ID))
	if len(snap.Messages) == 0 {
		return fmt.Errorf("no %s conversation found in %s", mode.ID, cfg.StorePath)
	}

	doc, err := export.HTML(export.Transcript{Mode: mode, Messages: snap.Messages})
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, doc, 0644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Exported %d messages to %s\n", len(snap.Messages), exportOut)
	return nil
}
