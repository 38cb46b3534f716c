package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
	"github.com/jonkmatsumo/interview-agent/internal/interpret"
	"github.com/jonkmatsumo/interview-agent/internal/observability"
	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/transport"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send one message and print the streamed reply",
	Long: `Sends a single message to a mode endpoint and writes the assistant's reply to
stdout as it streams. With --store, the turn is appended to the same local
history the chat UI uses.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

var (
	sendConfigPath string
	sendServerURL  string
	sendAuthToken  string
	sendStorePath  string
	sendMode       string
)

func init() {
	sendCmd.Flags().StringVar(&sendConfigPath, "config", "", "Path to config.json file")
	sendCmd.Flags().StringVarP(&sendServerURL, "server", "s", "", "Server base URL (defaults to INTERVIEW_SERVER_URL env var)")
	sendCmd.Flags().StringVar(&sendAuthToken, "token", "", "Bearer token (defaults to INTERVIEW_AUTH_TOKEN env var)")
	sendCmd.Flags().StringVar(&sendStorePath, "store", "", "SQLite file for local conversation history")
	sendCmd.Flags().StringVarP(&sendMode, "mode", "m", types.ModeChat, "Chat mode to send to")

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	mode, ok := chat.ModeByID(sendMode)
	if !ok {
		return fmt.Errorf("unknown mode %q; try the modes command", sendMode)
	}

	cfg, err := clientConfig(cmd, sendConfigPath, sendServerURL, sendAuthToken, sendStorePath)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	ctx := context.Background()
	text := strings.Join(args, " ")

	// Prior history and job context ride along so a one-shot send behaves
	// like a turn in the chat UI.
	snap := types.EmptySnapshot()
	if store != nil {
		snap = persist.LoadSnapshot(ctx, store, chat.SnapshotKey(mode.ID))
	}
	req := types.ChatRequest{Messages: append(snap.Messages, types.NewMessage(types.RoleUser, text))}
	jobCtx := chat.NewJobContext(store)
	req.JobDescription = jobCtx.Description()
	req.JobTitle = jobCtx.Title()
	req.Company = jobCtx.Company()

	client := transport.New(cfg.ServerURL, transport.WithAuthToken(cfg.AuthToken))
	var reply strings.Builder
	err = client.Stream(ctx, mode.APIEndpoint, req, func(chunk string) {
		reply.WriteString(chunk)
		fmt.Fprint(os.Stdout, chunk)
	})
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return err
	}

	if store != nil {
		snap.Messages = append(req.Messages, types.NewMessage(types.RoleAssistant, reply.String()))
		persist.SaveSnapshot(ctx, store, chat.SnapshotKey(mode.ID), snap)
	}

	// Content-builder replies carry structured proposals; show what the
	// assistant wants to save so a one-shot send isn't a black box.
	if mode.ID == types.ModeContentBuilder {
		if records := interpret.ParseContent(reply.String()); len(records) > 0 {
			observability.NewPrinter(os.Stdout).PrintPending(records)
		}
	}
	return nil
}
