// internal/actions/forms/restaurant-form/validation.go
package restaurantform

import (
	"dialogue-actions/internal/form"
)

// BuildForm returns the restaurant booking form: five slots asked in fixed
// order, each with its extraction strategies and validator.
func BuildForm(cfg *Config) form.Form {
	return form.Form{
		Name: ActionName,
		Slots: []form.Slot{
			{
				Name: SlotCuisine,
				Strategies: []form.Strategy{
					form.FromEntity{Entity: EntityCuisine, NotIntents: []string{IntentChitchat}},
				},
				Validator: form.OneOf{Options: cfg.Cuisines, RejectTemplate: cfg.Templates.WrongCuisine},
			},
			{
				Name: SlotPartySize,
				Strategies: []form.Strategy{
					form.FromEntity{Entity: EntityNumber, Intents: []string{IntentInform, IntentRequest}},
				},
				Validator: form.PositiveInteger{RejectTemplate: cfg.Templates.WrongPartySize},
			},
			{
				Name: SlotOutdoorSeating,
				Strategies: []form.Strategy{
					form.FromEntity{Entity: EntitySeat},
					form.FromIntent{Intent: IntentAffirm, Value: form.Bool(true)},
					form.FromIntent{Intent: IntentDeny, Value: form.Bool(false)},
				},
				Validator: form.CueFlag{
					TrueCue:        cfg.OutdoorCue,
					FalseCue:       cfg.IndoorCue,
					RejectTemplate: cfg.Templates.WrongSeating,
				},
			},
			{
				Name: SlotPreferences,
				Strategies: []form.Strategy{
					form.FromIntent{Intent: IntentDeny, Value: form.Text(NoPreferences)},
					form.FromText{NotIntent: IntentAffirm},
				},
			},
			{
				Name: SlotComments,
				Strategies: []form.Strategy{
					form.FromEntity{Entity: EntityComments},
					form.FromText{},
				},
			},
		},
		SubmitTemplate: cfg.Templates.SubmissionConfirm,
	}
}
