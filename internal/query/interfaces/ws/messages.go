package ws

import (
	"encoding/json"
	"strings"

	query "energy-dashboard/internal/query/domain"
)

// Message types.
const (
	TypeOptions      = "options"
	TypeViews        = "views"
	TypeError        = "error"
	TypeSelectionSet = "selection:set"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SelectionPayload is sent by clients to change the selection.
// Zero or blank fields keep the dashboard defaults.
type SelectionPayload struct {
	Year         int    `json:"year"`
	EnergySource string `json:"energy_source"`
	ProducerType string `json:"producer_type"`
}

// Selection resolves the payload against the defaults.
func (p SelectionPayload) Selection() query.Selection {
	sel := query.DefaultSelection()
	if p.Year != 0 {
		sel.Year = p.Year
	}
	if v := strings.TrimSpace(p.EnergySource); v != "" {
		sel.EnergySource = v
	}
	if v := strings.TrimSpace(p.ProducerType); v != "" {
		sel.ProducerType = v
	}
	return sel
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewEnvelope marshals payload under msgType.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
