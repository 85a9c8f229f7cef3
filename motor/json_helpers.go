package motor

import (
	"encoding/json"
	"io"
)

// HARDecoder is the token stream the log builder walks. Only the stdlib
// decoder implements it today.
type HARDecoder interface {
	Token() (json.Token, error)
	Decode(v any) error
	More() bool
}

type jsonHelper struct{}

var helper = &jsonHelper{}

// StdlibDecoder adapts encoding/json.Decoder to HARDecoder
type StdlibDecoder struct {
	decoder *json.Decoder
}

func (s *StdlibDecoder) Token() (json.Token, error) {
	return s.decoder.Token()
}

func (s *StdlibDecoder) Decode(v any) error {
	return s.decoder.Decode(v)
}

func (s *StdlibDecoder) More() bool {
	return s.decoder.More()
}

// expectDelim reads the next token and reports whether it is the wanted delimiter.
// the token is returned so callers can describe what they found instead.
func (h *jsonHelper) expectDelim(decoder HARDecoder, want json.Delim) (json.Token, bool, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, false, err
	}
	delim, ok := token.(json.Delim)
	return token, ok && delim == want, nil
}

func (h *jsonHelper) skipValue(decoder HARDecoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	switch token {
	case json.Delim('{'):
		return h.skipObject(decoder)
	case json.Delim('['):
		return h.skipArray(decoder)
	}

	return nil
}

func (h *jsonHelper) skipObject(decoder HARDecoder) error {
	for decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

func (h *jsonHelper) skipArray(decoder HARDecoder) error {
	for decoder.More() {
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

// describeToken names a json token for error messages.
func describeToken(token json.Token) string {
	switch v := token.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		if v == '{' {
			return "object"
		}
		return string(v)
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return "unknown"
}

func newHARDecoder(r io.Reader) HARDecoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return &StdlibDecoder{decoder: d}
}
