package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/mailcrest/mailcrest/pkg/cli/config"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a catalog document and exit",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			actions, compounds, err := catalogCfg.Configure(ctx)
			if err != nil {
				color.New(color.FgRed, color.Bold).Printf("FAIL %s\n", catalogCfg.Source())
				return err
			}

			color.New(color.FgGreen, color.Bold).Printf("OK %s\n", catalogCfg.Source())
			fmt.Printf("  actions:   %d\n", actions.Len())
			fmt.Printf("  compounds: %d\n", len(compounds.All()))
			fmt.Printf("  routes:    %d\n", len(compounds.RoutedIntents()))

			for _, compound := range compounds.All() {
				sv := compounds.ValidateSteps(compound.ID, actions)
				mark := color.GreenString("ok")
				if !sv.Valid {
					mark = color.RedString("missing steps: %v", sv.MissingStepIDs)
				}
				fmt.Printf("  compound %-32s %s\n", compound.ID, mark)
			}

			return nil
		},
	}
}
