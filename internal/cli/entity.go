package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newEntityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "World entity commands",
	}

	cmd.AddCommand(newEntityListCmd())
	cmd.AddCommand(newEntityActCmd())

	return cmd
}

func newEntityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List world entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result EntityList

			if err := client.Get("/api/v1/entities", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newEntityActCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "act <entity-id> <action>",
		Short: "Interact with a world entity (rent, purchase, info, ...)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result InteractResult

			path := "/api/v1/entities/" + url.PathEscape(args[0]) + "/" + url.PathEscape(args[1])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
