package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTxnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Economic transaction commands",
	}

	cmd.AddCommand(newTxnApplyCmd())
	cmd.AddCommand(newTxnListCmd())

	return cmd
}

func newTxnApplyCmd() *cobra.Command {
	var txnType, entityID string
	var base float64

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply an economic transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"type":        txnType,
				"base_amount": base,
				"entity_id":   entityID,
			}
			var result Receipt

			if err := client.Post("/api/v1/transactions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "", "Transaction type: crow_rental, tree_rental, shop_purchase, passive_income (required)")
	cmd.Flags().Float64Var(&base, "base", 0, "Base amount")
	cmd.Flags().StringVar(&entityID, "entity", "", "World entity ID")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newTxnListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			var result TransactionList

			path := "/api/v1/transactions?limit=" + strconv.Itoa(limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")

	return cmd
}
