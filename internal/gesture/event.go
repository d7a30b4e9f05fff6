package gesture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrMalformed marks a frame that is not a well-typed gesture object.
	ErrMalformed = errors.New("malformed gesture frame")
	// ErrNotAddressed marks a frame meant for another viewer.
	ErrNotAddressed = errors.New("frame not addressed to this viewer")
)

// Event is one decoded gesture sample. It lives for the processing of a
// single frame.
type Event struct {
	SenderID     string
	RecipientID  string
	X, Y         float64
	SourceWidth  float64
	SourceHeight float64
	Gesture      Kind
	Raw          string
}

// Message is the JSON frame exchanged through the relay.
type Message struct {
	To      string  `json:"to"`
	From    string  `json:"from"`
	Xval    float64 `json:"xval"`
	Yval    float64 `json:"yval"`
	DimX    float64 `json:"xdim"`
	DimY    float64 `json:"ydim"`
	Gestval string  `json:"gestval"`
}

// Event converts the wire message into a typed event.
func (m Message) Event() Event {
	return Event{
		SenderID:     m.From,
		RecipientID:  m.To,
		X:            m.Xval,
		Y:            m.Yval,
		SourceWidth:  m.DimX,
		SourceHeight: m.DimY,
		Gesture:      ParseKind(m.Gestval),
		Raw:          m.Gestval,
	}
}

const schemaURL = "gestureboard://message.schema.json"

// MessageSchema constrains field types only. Ranges and gesture names stay
// open: out-of-range points are clamped and unknown gestures drive the laser.
const MessageSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["to"],
  "properties": {
    "to":      {"type": "string"},
    "from":    {"type": "string"},
    "xval":    {"type": "number"},
    "yval":    {"type": "number"},
    "xdim":    {"type": "number"},
    "ydim":    {"type": "number"},
    "gestval": {"type": "string"}
  }
}`

// CompileMessageSchema compiles MessageSchema. The relay shares it with the decoder.
func CompileMessageSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader([]byte(MessageSchema))); err != nil {
		return nil, fmt.Errorf("add message schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile message schema: %w", err)
	}
	return schema, nil
}

// ParseMessage validates and decodes one raw text frame.
func ParseMessage(schema *jsonschema.Schema, frame []byte) (Message, error) {
	var doc any
	if err := json.Unmarshal(frame, &doc); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}

// Decoder turns frames into events for one viewer.
type Decoder struct {
	recipient string
	schema    *jsonschema.Schema
}

// NewDecoder returns a decoder accepting frames whose "to" equals recipientID.
func NewDecoder(recipientID string) (*Decoder, error) {
	schema, err := CompileMessageSchema()
	if err != nil {
		return nil, err
	}
	return &Decoder{recipient: recipientID, schema: schema}, nil
}

func (d *Decoder) Recipient() string { return d.recipient }

// Decode parses frame. It returns ErrMalformed for frames that are not
// gesture objects and ErrNotAddressed for frames routed to someone else.
func (d *Decoder) Decode(frame []byte) (Event, error) {
	msg, err := ParseMessage(d.schema, frame)
	if err != nil {
		return Event{}, err
	}
	if msg.To != d.recipient {
		return Event{}, ErrNotAddressed
	}
	return msg.Event(), nil
}
