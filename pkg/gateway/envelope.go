package gateway

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Envelope is the decoded reply body before interpretation. Every gateway
// reply carries a boolean success indicator; the remaining fields depend on
// the operation and are decoded per reply shape by the interpreter. A body
// that does not fit this shape never becomes an Envelope.
type Envelope struct {
	Success bool
	Fields  map[string]interface{}
}

// DecodeEnvelope parses a reply body into the tagged envelope shape.
// The returned error marks a transport-level problem, not a gateway one.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "reply body is not a JSON object")
	}
	success, ok := raw["success"].(bool)
	if !ok {
		return nil, errors.New(`reply body carries no boolean "success" field`)
	}
	delete(raw, "success")
	return &Envelope{Success: success, Fields: raw}, nil
}

// readReply is the payload a gateway echoes on a successful read.
type readReply struct {
	Slave   *uint  `mapstructure:"slave_id"`
	Address *uint  `mapstructure:"address"`
	Values  []uint `mapstructure:"values"`
}

// writeReply is the payload a gateway echoes on a successful write. All
// fields are optional: not every gateway firmware echoes them back.
type writeReply struct {
	Slave   *uint `mapstructure:"slave_id"`
	Address *uint `mapstructure:"address"`
	Count   *uint `mapstructure:"count"`
	Value   *uint `mapstructure:"value"`
}

// failureReply carries whatever diagnostic text a gateway attaches to a
// rejected operation.
type failureReply struct {
	Error   string `mapstructure:"error"`
	Message string `mapstructure:"message"`
}

// decode maps the envelope payload fields onto a typed reply struct.
// JSON numbers arrive as float64, so weak typing is required.
func (e *Envelope) decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(e.Fields)
}
