package usecase

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/catalog"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// urlAliasPriority is the documented fallback order for URL-bearing entity
// keys. When a template placeholder names a URL key that is absent from
// the bag, each alias is tried in this order and the first present,
// non-empty value wins.
var urlAliasPriority = []string{
	"url", "trackingUrl", "invoiceUrl", "checkInUrl", "productUrl",
	"dealUrl", "itemUrl", "productLink", "dealLink", "shopUrl",
	"proposalUrl", "meetingUrl", "reservationUrl", "itineraryUrl",
	"taskUrl", "incidentUrl", "registrationUrl", "surveyUrl", "resetUrl",
	"verifyUrl", "securityUrl", "revokeUrl", "resultsUrl", "supportUrl",
	"ticketUrl", "bookingUrl", "cartUrl", "link", "href",
}

var urlAliasSet = func() map[string]bool {
	set := make(map[string]bool, len(urlAliasPriority))
	for _, key := range urlAliasPriority {
		set[key] = true
	}
	return set
}()

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// DispatchRouter converts a resolved action into a concrete instruction
// for the presentation layer. It knows nothing about the UI: for in-app
// flows it only guarantees that every flow ID it emits exists in the
// action catalog.
type DispatchRouter struct {
	actions *catalog.ActionCatalog
}

// NewDispatchRouter creates a router over the action catalog
func NewDispatchRouter(actions *catalog.ActionCatalog) *DispatchRouter {
	return &DispatchRouter{actions: actions}
}

// Dispatch builds the descriptor for the resolved action. Per-request
// failures (ErrUnknownAction, ErrMissingURLTarget, ErrInvalidURLTarget)
// are recoverable: the caller surfaces an error state instead of a
// malformed URL, never a crash.
func (r *DispatchRouter) Dispatch(ctx context.Context, resolved *model.ResolvedAction, entities *model.EntityBag) (*model.DispatchDescriptor, error) {
	def := r.actions.Lookup(resolved.ActionID)
	if def == nil {
		return nil, goerr.Wrap(ErrUnknownAction, "resolved action is not in the catalog",
			goerr.V(ActionIDKey, resolved.ActionID.String()))
	}

	switch def.Type {
	case types.ActionTypeExternalLink:
		target, err := r.expandTemplate(def, entities)
		if err != nil {
			return nil, err
		}
		if err := validateURLTarget(target); err != nil {
			return nil, goerr.Wrap(err, "dispatch target rejected",
				goerr.V(ActionIDKey, def.ID.String()))
		}
		return &model.DispatchDescriptor{
			Kind: types.ActionTypeExternalLink,
			URL:  target,
		}, nil

	default:
		return &model.DispatchDescriptor{
			Kind:    types.ActionTypeInAppFlow,
			FlowID:  def.ID,
			Context: entities,
		}, nil
	}
}

// expandTemplate substitutes every {entityKey} placeholder. Any
// unresolved placeholder fails the dispatch; the attempted key list is
// attached to the error for diagnosis.
func (r *DispatchRouter) expandTemplate(def *model.ActionDefinition, entities *model.EntityBag) (string, error) {
	template := def.URLTemplate
	if template == "" {
		return "", goerr.Wrap(ErrMissingURLTarget, "action has no URL template",
			goerr.V(ActionIDKey, def.ID.String()))
	}

	result := template
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		placeholder, key := match[0], match[1]

		value, attempted := resolvePlaceholder(key, entities)
		if value == "" {
			return "", goerr.Wrap(ErrMissingURLTarget, "placeholder could not be resolved",
				goerr.V(ActionIDKey, def.ID.String()),
				goerr.V("placeholder", key),
				goerr.V("attempted_keys", attempted))
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result, nil
}

// resolvePlaceholder tries the exact key first; for URL-family keys it
// then walks the alias priority list. It returns the resolved value and
// the keys attempted.
func resolvePlaceholder(key string, entities *model.EntityBag) (string, []string) {
	attempted := []string{key}
	if v, ok := entities.String(key); ok && v != "" {
		return v, attempted
	}

	if !urlAliasSet[key] {
		return "", attempted
	}
	for _, alias := range urlAliasPriority {
		if alias == key {
			continue
		}
		attempted = append(attempted, alias)
		if v, ok := entities.String(alias); ok && v != "" {
			return v, attempted
		}
	}
	return "", attempted
}

// validateURLTarget enforces the outbound URL contract: non-empty after
// trimming, parseable, http or https scheme, host present.
func validateURLTarget(target string) error {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return goerr.Wrap(ErrInvalidURLTarget, "empty URL target")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return goerr.Wrap(ErrInvalidURLTarget, "unparseable URL target", goerr.V("target", trimmed))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return goerr.Wrap(ErrInvalidURLTarget, "URL scheme must be http or https",
			goerr.V("target", trimmed),
			goerr.V("scheme", parsed.Scheme))
	}
	if parsed.Host == "" {
		return goerr.Wrap(ErrInvalidURLTarget, "URL target has no host", goerr.V("target", trimmed))
	}
	return nil
}
