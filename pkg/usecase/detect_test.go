package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/usecase"
)

func TestCompoundActionDetector_Detect(t *testing.T) {
	detector := usecase.NewCompoundActionDetector()

	tests := []struct {
		name     string
		intent   types.Intent
		entities map[string]any
		want     types.ActionID
	}{
		{
			name:   "permission form with amount",
			intent: "education.permission.form",
			entities: map[string]any{
				"amount": "25.00",
			},
			want: "sign_form_with_payment",
		},
		{
			name:   "permission form with event date",
			intent: "education.permission.form",
			entities: map[string]any{
				"eventDate": "2026-09-15",
			},
			want: "sign_form_with_calendar",
		},
		{
			name:   "permission form with amount and event date prefers payment",
			intent: "education.permission.form",
			entities: map[string]any{
				"amount":    "25.00",
				"eventDate": "2026-09-15",
			},
			want: "sign_form_with_payment",
		},
		{
			name:     "bare permission form",
			intent:   "education.permission.form",
			entities: map[string]any{},
			want:     "sign_and_send",
		},
		{
			name:   "shipping with delivery date",
			intent: "e-commerce.shipping.notification",
			entities: map[string]any{
				"trackingNumber": "1Z999",
				"deliveryDate":   "2026-09-03",
			},
			want: "track_with_calendar",
		},
		{
			name:   "shipping without delivery date",
			intent: "e-commerce.shipping.notification",
			entities: map[string]any{
				"trackingNumber": "1Z999",
			},
			want: "",
		},
		{
			name:   "promotion with sale date",
			intent: "e-commerce.promotion.sale",
			entities: map[string]any{
				"saleDate": "2026-09-10",
			},
			want: "schedule_purchase_reminder",
		},
		{
			name:   "invoice with amount and merchant",
			intent: "billing.invoice.due",
			entities: map[string]any{
				"amount":   "120.50",
				"merchant": "Acme Corp",
			},
			want: "pay_with_confirmation",
		},
		{
			name:   "invoice with amount only",
			intent: "billing.invoice.due",
			entities: map[string]any{
				"amount": "120.50",
			},
			want: "",
		},
		{
			name:   "flight check-in with flight number",
			intent: "travel.flight.check-in",
			entities: map[string]any{
				"flightNumber": "UA123",
			},
			want: "check_in_with_wallet",
		},
		{
			name:   "appointment intent with date",
			intent: "healthcare.appointment.reminder",
			entities: map[string]any{
				"date": "2026-09-05T10:00:00Z",
			},
			want: "calendar_with_reminder",
		},
		{
			name:   "event intent with date time",
			intent: "community.event.invite",
			entities: map[string]any{
				"dateTime": "2026-09-05T18:00:00Z",
			},
			want: "calendar_with_reminder",
		},
		{
			name:     "appointment intent without date",
			intent:   "healthcare.appointment.reminder",
			entities: map[string]any{},
			want:     "",
		},
		{
			name:     "exact cancellation intent",
			intent:   "account.subscription.cancel",
			entities: map[string]any{},
			want:     "cancel_with_confirmation",
		},
		{
			name:     "substring cancellation intent",
			intent:   "streaming.plan.cancellation",
			entities: map[string]any{},
			want:     "cancel_with_confirmation",
		},
		{
			name:   "portal link with attachments and date",
			intent: "education.portal.link",
			entities: map[string]any{
				"extractedContent": map[string]any{
					"attachments": []any{"report.pdf"},
					"date":        "2026-09-20",
				},
			},
			want: "extract_download_calendar",
		},
		{
			name:   "portal link with date only",
			intent: "education.portal.link",
			entities: map[string]any{
				"extractedContent": map[string]any{
					"date": "2026-09-20",
				},
			},
			want: "extract_calendar_reminder",
		},
		{
			name:   "portal link with plain content",
			intent: "sports.portal.link",
			entities: map[string]any{
				"content": map[string]any{
					"summary": "practice schedule",
				},
			},
			want: "extract_and_reminder",
		},
		{
			name:     "portal link without extracted content",
			intent:   "education.portal.link",
			entities: map[string]any{},
			want:     "",
		},
		{
			name:   "unmatched intent yields nothing",
			intent: "finance.statement.ready",
			entities: map[string]any{
				"amount": "10.00",
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := model.NewEntityBag(tt.entities)
			gt.Value(t, detector.Detect(tt.intent, bag)).Equal(tt.want)
		})
	}
}

func TestCompoundActionDetector_Deterministic(t *testing.T) {
	detector := usecase.NewCompoundActionDetector()

	bag := model.NewEntityBag(map[string]any{
		"amount":    "25.00",
		"eventDate": "2026-09-15",
	})

	first := detector.Detect("education.permission.form", bag)
	gt.Value(t, first).Equal(types.ActionID("sign_form_with_payment"))
	for i := 0; i < 10; i++ {
		gt.Value(t, detector.Detect("education.permission.form", bag)).Equal(first)
	}
}
