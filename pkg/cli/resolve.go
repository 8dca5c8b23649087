package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mailcrest/mailcrest/pkg/cli/config"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/repository/memory"
	"github.com/mailcrest/mailcrest/pkg/usecase"
	"github.com/mailcrest/mailcrest/pkg/utils/logging"
	"github.com/mailcrest/mailcrest/pkg/utils/safe"
)

func cmdResolve() *cli.Command {
	var input string
	var userID string
	var emailID string
	var primaryActionID string
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Classification JSON file path, or '-' for stdin",
			Value:       "-",
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID for the resolution pass (random when empty)",
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Email ID for the resolution pass (random when empty)",
			Destination: &emailID,
		},
		&cli.StringFlag{
			Name:        "primary",
			Usage:       "Backend-suggested primary action ID",
			Destination: &primaryActionID,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "resolve",
		Aliases: []string{"r"},
		Usage:   "Resolve a single classification and print the outcome",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			actions, compounds, err := catalogCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}

			var data []byte
			if input == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				// #nosec G304 - path comes from the input flag
				data, err = os.ReadFile(input)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to read classification", goerr.V("input", input))
			}

			var classification model.Classification
			if err := json.Unmarshal(data, &classification); err != nil {
				return goerr.Wrap(err, "failed to parse classification JSON")
			}

			if userID == "" {
				userID = uuid.NewString()
			}
			if emailID == "" {
				emailID = uuid.NewString()
			}

			repo := memory.New()
			uc := usecase.New(repo, actions, compounds)
			defer uc.Close()

			result, err := uc.ResolveEmail(ctx, usecase.ResolveEmailInput{
				UserID:          types.UserID(userID),
				EmailID:         types.EmailID(emailID),
				Classification:  classification,
				PrimaryActionID: types.ActionID(primaryActionID),
			})
			if err != nil {
				return goerr.Wrap(err, "failed to resolve",
					goerr.V("user_id", userID),
					goerr.V("email_id", emailID))
			}

			logging.Default().Debug("resolution completed",
				"user_id", userID,
				"email_id", emailID,
				"action_id", result.Resolved.ActionID,
				"source", result.Resolved.Source)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode resolution")
			}
			safe.Write(ctx, os.Stdout, append(out, '\n'))
			return nil
		},
	}
}
