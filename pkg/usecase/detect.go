package usecase

import (
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// Intents with dedicated detection rules
const (
	intentPermissionForm       types.Intent = "education.permission.form"
	intentShippingNotification types.Intent = "e-commerce.shipping.notification"
	intentPromotionSale        types.Intent = "e-commerce.promotion.sale"
	intentInvoiceDue           types.Intent = "billing.invoice.due"
	intentFlightCheckIn        types.Intent = "travel.flight.check-in"
)

// cancellationIntents is the exact-match part of the cancellation family;
// the substring "cancel" covers the rest
var cancellationIntents = map[types.Intent]bool{
	"account.subscription.cancel": true,
	"billing.subscription.cancel": true,
}

// linkOnlyIntents are low-content portal notifications whose value lives in
// the extracted nested content
var linkOnlyIntents = map[types.Intent]bool{
	"education.portal.link": true,
	"sports.portal.link":    true,
}

// extractedContentKeys are the keys under which the extraction pipeline
// stores nested portal content, tried in order
var extractedContentKeys = []string{"extractedContent", "content"}

// detectionRule is a single heuristic. It returns the suggested compound
// action ID, or "" when the rule does not apply.
type detectionRule struct {
	name  string
	apply func(intent types.Intent, entities *model.EntityBag) types.ActionID
}

// CompoundActionDetector decides whether a multi-step flow should be
// suggested instead of a single action. Rules are authored in decreasing
// specificity order and the first match wins: evaluating all rules and
// scoring them would silently change the documented precedence, so a new,
// more specific rule must be inserted before the broader ones it refines.
type CompoundActionDetector struct {
	rules []detectionRule
}

// NewCompoundActionDetector creates a detector with the built-in rule
// order.
func NewCompoundActionDetector() *CompoundActionDetector {
	return &CompoundActionDetector{
		rules: []detectionRule{
			{
				name: "permission form with payment",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentPermissionForm {
						if _, ok := entities.Amount(); ok {
							return "sign_form_with_payment"
						}
					}
					return ""
				},
			},
			{
				name: "permission form with event date",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentPermissionForm {
						if _, ok := entities.EventDate(); ok {
							return "sign_form_with_calendar"
						}
					}
					return ""
				},
			},
			{
				name: "permission form catch-all",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentPermissionForm {
						return "sign_and_send"
					}
					return ""
				},
			},
			{
				name: "shipping with delivery date",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentShippingNotification {
						if _, ok := entities.DeliveryDate(); ok {
							return "track_with_calendar"
						}
					}
					return ""
				},
			},
			{
				name: "promotion with sale date",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentPromotionSale {
						if _, ok := entities.SaleDate(); ok {
							return "schedule_purchase_reminder"
						}
					}
					return ""
				},
			},
			{
				name: "invoice with amount and merchant",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentInvoiceDue {
						_, hasAmount := entities.Amount()
						_, hasMerchant := entities.Merchant()
						if hasAmount && hasMerchant {
							return "pay_with_confirmation"
						}
					}
					return ""
				},
			},
			{
				name: "flight check-in",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if intent == intentFlightCheckIn {
						if _, ok := entities.FlightNumber(); ok {
							return "check_in_with_wallet"
						}
					}
					return ""
				},
			},
			{
				name: "generic appointment or event",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if (intent.Contains("appointment") || intent.Contains("event")) && entities.HasDateTime() {
						return "calendar_with_reminder"
					}
					return ""
				},
			},
			{
				name: "cancellation family",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if cancellationIntents[intent] || intent.Contains("cancel") {
						return "cancel_with_confirmation"
					}
					return ""
				},
			},
			{
				name: "link-only portal content",
				apply: func(intent types.Intent, entities *model.EntityBag) types.ActionID {
					if !linkOnlyIntents[intent] {
						return ""
					}
					content := extractedContent(entities)
					if content == nil {
						return ""
					}
					hasAttachments := content.Has("attachments")
					hasDate := content.HasDateTime()
					switch {
					case hasAttachments && hasDate:
						return "extract_download_calendar"
					case hasDate:
						return "extract_calendar_reminder"
					default:
						return "extract_and_reminder"
					}
				},
			},
		},
	}
}

// Detect applies the ordered rules and returns the first matching compound
// action ID, or "" when no compound flow should be suggested. The decision
// is a pure function of its inputs.
func (d *CompoundActionDetector) Detect(intent types.Intent, entities *model.EntityBag) types.ActionID {
	for _, rule := range d.rules {
		if id := rule.apply(intent, entities); id != "" {
			return id
		}
	}
	return ""
}

// extractedContent returns the nested portal content bag, if any
func extractedContent(entities *model.EntityBag) *model.EntityBag {
	for _, key := range extractedContentKeys {
		if nested, ok := entities.Nested(key); ok {
			return nested
		}
	}
	return nil
}
