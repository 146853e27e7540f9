// Package canonhash fingerprints JSON-shaped values independent of key order.
package canonhash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Canonical re-encodes v as JSON with object keys sorted at every depth.
// Values are first normalised through a generic decode, so a struct and a map
// carrying the same keys and values produce the same bytes.
func Canonical(v any) ([]byte, error) {
	raw, ok := v.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Sum returns the lowercase hex SHA-256 of Canonical(v).
func Sum(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// SumJSON hashes an already encoded JSON document.
func SumJSON(data []byte) (string, error) {
	return Sum(json.RawMessage(data))
}
