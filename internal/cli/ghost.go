package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGhostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghost",
		Short: "Ghost access administration commands",
	}

	cmd.AddCommand(newGhostEnterCmd())
	cmd.AddCommand(newGhostRestoreCmd())
	cmd.AddCommand(newGhostAuditCmd())

	return cmd
}

func newGhostEnterCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Enter a ghost session for a target user (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target_username": target}
			var result SessionResult

			if err := client.Post("/api/v1/ghost", req, &result); err != nil {
				return err
			}

			// The ghost token replaces the admin token until restore
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target username (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGhostRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Return from a ghost session to the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult

			if err := client.Post("/api/v1/ghost/restore", nil, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGhostAuditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			var result AuditList

			path := "/api/v1/audit?limit=" + strconv.Itoa(limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events")

	return cmd
}
