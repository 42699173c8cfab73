package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DocumentVersion is the envelope version written by EncodeDocument.
const DocumentVersion = 1

// ErrUnsupportedDocumentVersion is returned for envelopes newer than DocumentVersion.
var ErrUnsupportedDocumentVersion = errors.New("unsupported document version")

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// EncodeDocument serializes v inside a versioned envelope for a jsonb column.
func EncodeDocument(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	out, err := json.Marshal(envelope{Version: DocumentVersion, Data: data})
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(out), nil
}

// DecodeDocument deserializes a stored document into v. Documents written
// before the envelope existed are decoded as bare JSON.
func DecodeDocument(doc string, v any) error {
	raw := []byte(doc)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if len(fields) == 2 && fields["version"] != nil && fields["data"] != nil {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		if env.Version > DocumentVersion {
			return fmt.Errorf("%w: %d", ErrUnsupportedDocumentVersion, env.Version)
		}
		raw = env.Data
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
