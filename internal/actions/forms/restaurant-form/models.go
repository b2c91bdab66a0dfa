// internal/actions/forms/restaurant-form/models.go
package restaurantform

import "time"

// Slot names, in the order the form asks for them.
const (
	SlotCuisine        = "cocina"
	SlotPartySize      = "numero_personas"
	SlotOutdoorSeating = "asiento_exterior"
	SlotPreferences    = "preferencias"
	SlotComments       = "comentarios"
)

// Intents and entities produced by the NLU pipeline.
const (
	IntentChitchat = "chitchat"
	IntentInform   = "informar"
	IntentRequest  = "solicitar_restaurante"
	IntentAffirm   = "afirmar"
	IntentDeny     = "negar"

	EntityCuisine  = "cocina"
	EntityNumber   = "number"
	EntitySeat     = "asiento"
	EntityComments = "comentarios"
)

// NoPreferences is stored when the user declines to give preferences.
const NoPreferences = "Sin preferencias adicionales"

// Reservation is the completed form as written by a Recorder.
type Reservation struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"senderId"`
	Cuisine        string    `json:"cuisine"`
	PartySize      int       `json:"partySize"`
	OutdoorSeating bool      `json:"outdoorSeating"`
	Preferences    string    `json:"preferences"`
	Comments       string    `json:"comments"`
	CreatedAt      time.Time `json:"createdAt"`
}
