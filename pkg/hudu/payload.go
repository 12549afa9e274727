package hudu

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadShape identifies the top-level shape of an API response body.
type PayloadShape int

const (
	// PayloadWrapped is a JSON object whose first key holds the actual
	// data, e.g. {"assets": [...]} or {"asset": {...}}.
	PayloadWrapped PayloadShape = iota

	// PayloadList is a bare JSON array.
	PayloadList
)

// Payload is a classified API response body. Hudu wraps most list and
// object responses in a single named field; some endpoints return bare
// arrays. Classification happens once, at the transport boundary, so
// nothing downstream has to inspect raw JSON shapes.
type Payload struct {
	Shape PayloadShape

	// Key is the envelope field name for PayloadWrapped responses.
	Key string

	// Object is set when the payload carries exactly one object, which
	// is how single-resource GET endpoints respond.
	Object json.RawMessage

	// Items is set when the payload carries a list.
	Items []json.RawMessage
}

// Single reports whether the payload is a single-object response.
func (p *Payload) Single() bool {
	return p.Object != nil
}

// Len returns the effective response size used by the pagination loop:
// 1 for a single object, the item count for a list.
func (p *Payload) Len() int {
	if p.Single() {
		return 1
	}

	return len(p.Items)
}

// ClassifyPayload decodes a response body into a tagged Payload.
//
// A JSON object yields PayloadWrapped with the data taken from the
// object's first key in document order; the envelope key order matters,
// so the key is read from the decoder's token stream rather than an
// unordered map. A JSON array yields PayloadList. Anything else is
// ErrUnsupportedShape, so an unrecognized server format fails loudly
// instead of silently corrupting results.
func ClassifyPayload(data []byte) (*Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedShape, tok)
	}

	switch delim {
	case '{':
		return classifyWrapped(dec)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding response list: %w", err)
		}

		return &Payload{Shape: PayloadList, Items: items}, nil
	default:
		return nil, fmt.Errorf("%w: got delimiter %q", ErrUnsupportedShape, delim.String())
	}
}

func classifyWrapped(dec *json.Decoder) (*Payload, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding envelope key: %w", err)
	}

	if delim, ok := tok.(json.Delim); ok && delim == '}' {
		return nil, fmt.Errorf("%w: empty object envelope", ErrUnsupportedShape)
	}

	key, ok := tok.(string)
	if !ok {
		return nil, fmt.Errorf("%w: non-string envelope key %v", ErrUnsupportedShape, tok)
	}

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding envelope value: %w", err)
	}

	payload := &Payload{Shape: PayloadWrapped, Key: key}

	switch firstByte(value) {
	case '[':
		if err := json.Unmarshal(value, &payload.Items); err != nil {
			return nil, fmt.Errorf("decoding envelope list: %w", err)
		}
	default:
		// A wrapped scalar would be unusual but is still one value per
		// the envelope contract; single-resource GETs land here.
		payload.Object = value
	}

	return payload, nil
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}
