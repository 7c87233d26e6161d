package goform

import (
	"bytes"
	"net/url"
	"sort"

	json "github.com/goccy/go-json"
)

// Formdata is the multi-valued wire input mapping consumed by Process.
// Any adapter satisfying this interface may be passed as form input; the
// wrappers below cover url.Values, plain maps and flat JSON objects.
type Formdata interface {
	// Has reports whether the key appeared in the wire payload.
	Has(key string) bool
	// GetAll returns every raw string submitted under key, in order.
	GetAll(key string) []string
	// Keys lists every key present in the payload.
	Keys() []string
}

type valuesData url.Values

// Values adapts url.Values (request.Form, request.PostForm, parsed query
// strings) as Formdata.
func Values(v url.Values) Formdata { return valuesData(v) }

func (d valuesData) Has(key string) bool { _, ok := d[key]; return ok }

func (d valuesData) GetAll(key string) []string { return d[key] }

func (d valuesData) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MultiMap adapts a map of key to value list as Formdata.
func MultiMap(m map[string][]string) Formdata { return valuesData(m) }

type singleData map[string]string

// SingleMap adapts a single-valued map as Formdata; every present key
// yields exactly one raw value.
func SingleMap(m map[string]string) Formdata { return singleData(m) }

func (d singleData) Has(key string) bool { _, ok := d[key]; return ok }

func (d singleData) GetAll(key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	return []string{v}
}

func (d singleData) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONObject decodes a flat JSON object into Formdata. Scalar members
// become single raw values, arrays become multi-valued entries, and null
// members are treated as absent keys. Numbers keep their literal wire
// text so coercion sees exactly what was submitted.
func JSONObject(data []byte) (Formdata, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(obj))
	for k, raw := range obj {
		vals, ok, err := jsonRawStrings(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = vals
		}
	}
	return valuesData(out), nil
}

func jsonRawStrings(raw json.RawMessage) ([]string, bool, error) {
	var probe any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&probe); err != nil {
		return nil, false, err
	}
	switch v := probe.(type) {
	case nil:
		return nil, false, nil
	case []any:
		vals := make([]string, 0, len(v))
		for _, item := range v {
			vals = append(vals, jsonScalarString(item))
		}
		return vals, true, nil
	default:
		return []string{jsonScalarString(v)}, true, nil
	}
}

func jsonScalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		// Nested objects are not meaningful as raw field input; keep their
		// JSON text so the problem is visible at validation time.
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
