package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/repository/firestore"
	"github.com/mailcrest/mailcrest/pkg/repository/memory"
)

// Repository holds CLI flags for repository backend selection
type Repository struct {
	backend            string
	firestoreProjectID string
	firestoreDatabase  string
	collectionPrefix   string
}

// Flags returns CLI flags for repository configuration
func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend (memory or firestore)",
			Value:       "memory",
			Sources:     cli.EnvVars("MAILCREST_REPOSITORY_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for Firestore",
			Sources:     cli.EnvVars("MAILCREST_FIRESTORE_PROJECT_ID"),
			Destination: &x.firestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID (empty for the default database)",
			Sources:     cli.EnvVars("MAILCREST_FIRESTORE_DATABASE_ID"),
			Destination: &x.firestoreDatabase,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix for Firestore collection names",
			Sources:     cli.EnvVars("MAILCREST_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &x.collectionPrefix,
		},
	}
}

// Configure builds the repository selected by the flags
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case "memory", "":
		return memory.New(), nil

	case "firestore":
		if x.firestoreProjectID == "" {
			return nil, goerr.New("firestore-project-id is required for the firestore backend")
		}
		var opts []firestore.Option
		if x.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(x.collectionPrefix))
		}
		repo, err := firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabase, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create firestore repository")
		}
		return repo, nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", x.backend))
	}
}

// FirestoreProjectID returns the configured Firestore project ID
func (x *Repository) FirestoreProjectID() string { return x.firestoreProjectID }

// FirestoreDatabaseID returns the configured Firestore database ID
func (x *Repository) FirestoreDatabaseID() string { return x.firestoreDatabase }

// LogValue renders the repository config for startup logging
func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("firestore_project_id", x.firestoreProjectID),
		slog.String("firestore_database_id", x.firestoreDatabase),
		slog.String("collection_prefix", x.collectionPrefix),
	)
}
