package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Settings registry commands",
	}

	cmd.AddCommand(newSettingGetCmd())
	cmd.AddCommand(newSettingSetCmd())

	return cmd
}

func newSettingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <query>",
		Short: "Look up a setting by key or fuzzy query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Setting

			path := "/api/v1/settings?q=" + url.QueryEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSettingSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a setting (admin only)",
		Long: `Update a setting to a new value. The value is parsed as a boolean
or number where possible, otherwise sent as a string.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			req := map[string]any{"value": parseSettingValue(args[1])}
			var result SettingUpdate

			if err := client.Put("/api/v1/settings/"+url.PathEscape(key), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// parseSettingValue maps a CLI argument onto the control value types:
// booleans for toggles, numbers for sliders, strings for colors.
func parseSettingValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
