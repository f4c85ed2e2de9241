package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned by ReadDocument for bodies that are not a JSON object.
var ErrNotObject = errors.New("o corpo da requisição deve ser um objeto JSON")

// ReadDocument decodes a JSON object, keeping numbers as json.Number so that
// numeric rules see the literal the client sent. An empty body is an empty
// document.
func ReadDocument(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Document(obj), nil
}

// String returns the string at path, or "" when absent or not a string.
func (d Document) String(path string) string {
	v, _ := get(d, path)
	s, _ := v.(string)
	return s
}

// Decode copies the (sanitized) document into dst through its JSON tags. A
// value of the wrong JSON type is reported as a violation of its field.
func (d Document) Decode(dst any) error {
	raw, err := json.Marshal(map[string]any(d))
	if err != nil {
		return err
	}
	err = json.Unmarshal(raw, dst)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Errors{{
			Value:    typeErr.Value,
			Msg:      "Tipo de dado inválido",
			Param:    typeErr.Field,
			Location: "body",
		}}
	}
	return err
}
