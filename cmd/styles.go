package cmd

import (
	"fmt"

	"mural/internal/core/domain"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the available styles",
	Args:  cobra.NoArgs,
	RunE:  runStyles,
}

func runStyles(cmd *cobra.Command, _ []string) error {
	for _, option := range domain.Styles() {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", option.Name, option.PromptText)
		if err != nil {
			return err
		}
	}

	return nil
}
