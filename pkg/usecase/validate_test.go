package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/usecase"
)

func TestEntityValidator_IsSatisfied(t *testing.T) {
	action := &model.ActionDefinition{
		ID:               "track_package",
		DisplayName:      "Track package",
		Type:             types.ActionTypeExternalLink,
		RequiredEntities: []string{"trackingNumber", "carrier"},
		OptionalEntities: []string{"deliveryDate"},
		Priority:         1,
		URLTemplate:      "{trackingUrl}",
	}

	var validator usecase.EntityValidator

	tests := []struct {
		name     string
		entities map[string]any
		want     bool
	}{
		{
			name: "all required present",
			entities: map[string]any{
				"trackingNumber": "1Z999",
				"carrier":        "UPS",
			},
			want: true,
		},
		{
			name: "missing one required",
			entities: map[string]any{
				"trackingNumber": "1Z999",
			},
			want: false,
		},
		{
			name: "null required counts as absent",
			entities: map[string]any{
				"trackingNumber": "1Z999",
				"carrier":        nil,
			},
			want: false,
		},
		{
			name: "missing optional does not matter",
			entities: map[string]any{
				"trackingNumber": "1Z999",
				"carrier":        "UPS",
			},
			want: true,
		},
		{
			name:     "empty bag fails",
			entities: map[string]any{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := model.NewEntityBag(tt.entities)
			gt.Value(t, validator.IsSatisfied(action, bag)).Equal(tt.want)
		})
	}
}

func TestEntityValidator_NoRequiredEntities(t *testing.T) {
	action := &model.ActionDefinition{
		ID:          "view_details",
		DisplayName: "View details",
		Type:        types.ActionTypeInAppFlow,
		Priority:    5,
	}

	var validator usecase.EntityValidator
	gt.Bool(t, validator.IsSatisfied(action, model.NewEntityBag(nil))).True()
}

func TestEntityValidator_Eligible(t *testing.T) {
	candidates := []*model.ActionDefinition{
		{
			ID:               "track_package",
			DisplayName:      "Track package",
			Type:             types.ActionTypeExternalLink,
			RequiredEntities: []string{"trackingNumber"},
			Priority:         1,
			URLTemplate:      "{trackingUrl}",
		},
		{
			ID:               "pay_invoice",
			DisplayName:      "Pay invoice",
			Type:             types.ActionTypeExternalLink,
			RequiredEntities: []string{"invoiceUrl"},
			Priority:         1,
			URLTemplate:      "{invoiceUrl}",
		},
		{
			ID:          "view_details",
			DisplayName: "View details",
			Type:        types.ActionTypeInAppFlow,
			Priority:    5,
		},
	}

	var validator usecase.EntityValidator

	bag := model.NewEntityBag(map[string]any{"trackingNumber": "1Z999"})
	eligible := validator.Eligible(candidates, bag)

	gt.Array(t, eligible).Length(2)
	gt.Value(t, eligible[0].ID).Equal(types.ActionID("track_package"))
	gt.Value(t, eligible[1].ID).Equal(types.ActionID("view_details"))
}

func TestEntityValidator_Idempotent(t *testing.T) {
	action := &model.ActionDefinition{
		ID:               "add_to_calendar",
		DisplayName:      "Add to calendar",
		Type:             types.ActionTypeInAppFlow,
		RequiredEntities: []string{"eventDate"},
		Priority:         2,
	}

	var validator usecase.EntityValidator
	bag := model.NewEntityBag(map[string]any{"eventDate": "2026-09-01"})

	first := validator.IsSatisfied(action, bag)
	for i := 0; i < 5; i++ {
		gt.Value(t, validator.IsSatisfied(action, bag)).Equal(first)
	}
}
