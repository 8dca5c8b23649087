package catalog

import (
	"context"
	_ "embed"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/utils/safe"
)

// Document is the authoritative catalog source of truth: one versioned
// TOML document carrying actions, compound actions and intent routes.
// Every consumer (the server, the validate CI command, any mirror
// generator) reads this same document, which is what keeps the registries
// from drifting apart.
type Document struct {
	Version   string                           `toml:"version"`
	Actions   []model.ActionDefinition         `toml:"action"`
	Compounds []model.CompoundActionDefinition `toml:"compound"`
	Routes    []IntentRoute                    `toml:"route"`
}

//go:embed defaults.toml
var defaultsTOML []byte

const gcsPrefix = "gs://"

// Parse decodes a catalog document from TOML
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog document")
	}
	if doc.Version == "" {
		return nil, goerr.New("catalog document has no version")
	}
	return &doc, nil
}

// Build constructs the catalogs from a parsed document and runs every
// load-time invariant check. Any failure here must abort process start.
func Build(doc *Document) (*ActionCatalog, *CompoundCatalog, error) {
	actionDefs := make([]*model.ActionDefinition, len(doc.Actions))
	for i := range doc.Actions {
		actionDefs[i] = &doc.Actions[i]
	}
	actions, err := NewActionCatalog(actionDefs)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to build action catalog",
			goerr.V("version", doc.Version))
	}

	compoundDefs := make([]*model.CompoundActionDefinition, len(doc.Compounds))
	for i := range doc.Compounds {
		compoundDefs[i] = &doc.Compounds[i]
	}
	compounds, err := NewCompoundCatalog(compoundDefs, doc.Routes)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to build compound action catalog",
			goerr.V("version", doc.Version))
	}

	if err := compounds.ValidateAll(actions); err != nil {
		return nil, nil, goerr.Wrap(err, "compound step validation failed",
			goerr.V("version", doc.Version))
	}

	return actions, compounds, nil
}

// Load reads a catalog document from a local path or a gs://bucket/object
// URL and builds the catalogs.
func Load(ctx context.Context, source string) (*ActionCatalog, *CompoundCatalog, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, gcsPrefix) {
		data, err = readGCS(ctx, source)
	} else {
		// #nosec G304 - path comes from the CLI catalog flag
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read catalog document", goerr.V("source", source))
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse catalog document", goerr.V("source", source))
	}

	return Build(doc)
}

// LoadDefault builds the catalogs from the embedded default document
func LoadDefault() (*ActionCatalog, *CompoundCatalog, error) {
	doc, err := Parse(defaultsTOML)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse embedded default catalog")
	}
	return Build(doc)
}

// readGCS fetches gs://bucket/object
func readGCS(ctx context.Context, source string) ([]byte, error) {
	path := strings.TrimPrefix(source, gcsPrefix)
	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || object == "" {
		return nil, goerr.New("invalid GCS catalog source", goerr.V("source", source))
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	defer safe.Close(ctx, client)

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open catalog object",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	defer safe.Close(ctx, reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog object",
			goerr.V("bucket", bucket),
			goerr.V("object", object))
	}
	return data, nil
}
