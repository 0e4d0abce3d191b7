package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Row is one unprocessed capture row from the row source.
type Row struct {
	Key     string // Kismet devkey, used for logging only
	Type    string // declared device type column
	Payload []byte // JSON text of the tracked device
}

// RawRecord is a decoded capture record. The normalizer never mutates it.
type RawRecord map[string]any

// ParseRecord decodes a capture payload into a RawRecord. Numbers are kept as
// json.Number so that extracted values preserve Kismet's textual form. The
// payload must hold exactly one JSON object; anything but whitespace after it
// is rejected.
func ParseRecord(payload []byte) (RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var rec RawRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("parse capture record: %w", err)
	}
	if rec == nil {
		return nil, errors.New("parse capture record: payload is null")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse capture record: trailing data after JSON object")
	}
	return rec, nil
}

// Lookup walks path through nested objects and reports whether every key was
// present. An empty path returns the record itself.
func (r RawRecord) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Object returns the nested object at path.
func (r RawRecord) Object(path ...string) (RawRecord, bool) {
	v, ok := r.Lookup(path...)
	if !ok {
		return nil, false
	}
	m, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return RawRecord(m), true
}

// Scalar returns the value at path rendered as a string. Objects, arrays and
// nulls are not scalars and report false.
func (r RawRecord) Scalar(path ...string) (string, bool) {
	v, ok := r.Lookup(path...)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// String is Scalar without the presence flag.
func (r RawRecord) String(path ...string) string {
	s, _ := r.Scalar(path...)
	return s
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	default:
		return nil, false
	}
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
