package motor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/pb33f/harhar"
	"github.com/pb33f/tracelens/motor/model"
)

const (
	keyLog     = "log"
	keyVersion = "version"
	keyCreator = "creator"
	keyBrowser = "browser"
	keyPages   = "pages"
	keyEntries = "entries"
)

// ParseFromJSON decodes a HAR document and analyzes every entry in it.
// Syntax errors are reported as model.ErrMalformedInput, a missing or mistyped
// log.entries as model.ErrInvalidStructure. A single unparseable request URL
// fails the whole document with model.ErrMalformedURL.
func ParseFromJSON(data []byte) (*TraceAnalysis, error) {
	if !json.Valid(data) {
		var probe json.RawMessage
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = fmt.Errorf("invalid json")
		}
		return nil, fmt.Errorf("%w: failed to parse HAR JSON: %w", model.ErrMalformedInput, err)
	}

	log, err := newLogBuilder().build(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	analysis, err := Analyze(*log)
	if err != nil {
		return nil, err
	}
	analysis.Fingerprint = fmt.Sprintf("%x", xxhash.Sum64(data))
	return analysis, nil
}

// ParseFromString is ParseFromJSON for text input.
func ParseFromString(text string) (*TraceAnalysis, error) {
	return ParseFromJSON([]byte(text))
}

// ParseFromReader reads r to the end and parses the result.
func ParseFromReader(r io.Reader) (*TraceAnalysis, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read har: %w", err)
	}
	return ParseFromJSON(data)
}

// logBuilder walks the document token by token so a missing or mistyped
// entries array can be told apart from a syntax error.
type logBuilder struct {
	log        model.Log
	sawLog     bool
	sawEntries bool
}

func newLogBuilder() *logBuilder {
	return &logBuilder{}
}

func (b *logBuilder) build(reader io.Reader) (*model.Log, error) {
	decoder := newHARDecoder(reader)

	token, ok, err := helper.expectDelim(decoder, '{')
	if err != nil {
		return nil, malformed(err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: har document must be an object, got %s",
			model.ErrInvalidStructure, describeToken(token))
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, malformed(err)
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		switch key {
		case keyLog:
			b.sawLog = true
			if err := b.parseLog(decoder); err != nil {
				return nil, err
			}
		default:
			if err := helper.skipValue(decoder); err != nil {
				return nil, malformed(err)
			}
		}
	}

	if !b.sawLog {
		return nil, fmt.Errorf("%w: log object is required", model.ErrInvalidStructure)
	}
	if !b.sawEntries {
		return nil, fmt.Errorf("%w: entries array is required", model.ErrInvalidStructure)
	}
	return &b.log, nil
}

func (b *logBuilder) parseLog(decoder HARDecoder) error {
	token, ok, err := helper.expectDelim(decoder, '{')
	if err != nil {
		return malformed(err)
	}
	if !ok {
		return fmt.Errorf("%w: log must be an object, got %s", model.ErrInvalidStructure, describeToken(token))
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return malformed(err)
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		switch key {
		case keyVersion:
			if err := decoder.Decode(&b.log.Version); err != nil {
				return invalidField(keyVersion, err)
			}
		case keyCreator:
			var creator harhar.Creator
			if err := decoder.Decode(&creator); err != nil {
				return invalidField(keyCreator, err)
			}
			b.log.Creator = creator
		case keyBrowser:
			var browser harhar.Creator
			if err := decoder.Decode(&browser); err != nil {
				return invalidField(keyBrowser, err)
			}
			b.log.Browser = &browser
		case keyPages:
			if err := decoder.Decode(&b.log.Pages); err != nil {
				return invalidField(keyPages, err)
			}
		case keyEntries:
			b.sawEntries = true
			if err := b.parseEntries(decoder); err != nil {
				return err
			}
		default:
			if err := helper.skipValue(decoder); err != nil {
				return malformed(err)
			}
		}
	}

	// closing brace of log
	if _, err := decoder.Token(); err != nil {
		return malformed(err)
	}
	return nil
}

func (b *logBuilder) parseEntries(decoder HARDecoder) error {
	token, ok, err := helper.expectDelim(decoder, '[')
	if err != nil {
		return malformed(err)
	}
	if !ok {
		return fmt.Errorf("%w: entries must be an array, got %s", model.ErrInvalidStructure, describeToken(token))
	}

	entries := make([]model.Entry, 0)
	for decoder.More() {
		var entry model.Entry
		if err := decoder.Decode(&entry); err != nil {
			return fmt.Errorf("%w: entry %d: %w", model.ErrInvalidStructure, len(entries), err)
		}
		entries = append(entries, entry)
	}

	// closing bracket of entries
	if _, err := decoder.Token(); err != nil {
		return malformed(err)
	}

	b.log.Entries = entries
	return nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: failed to parse HAR JSON: %w", model.ErrMalformedInput, err)
}

func invalidField(key string, err error) error {
	return fmt.Errorf("%w: log.%s: %w", model.ErrInvalidStructure, key, err)
}
