package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"internhunt/internal/refdata"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles available for --target-role",
	Long: `List the target roles known to the reference tables, with the
reference skill set for each. These are the values accepted by the
analyze command's --target-role flag.`,
	RunE: runRoles,
}

func runRoles(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())

	tables := refdata.Defaults()
	if cfg.Analysis.ReferenceTables != "" {
		loaded, err := refdata.Load(cfg.Analysis.ReferenceTables)
		if err != nil {
			return fmt.Errorf("failed to load reference tables: %w", err)
		}
		tables = loaded
	}

	for _, role := range tables.Roles {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", role.Role)
		for _, skill := range role.Skills {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", skill)
		}
	}
	return nil
}
