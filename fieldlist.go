package goform

import (
	"fmt"
	"sort"
	"strings"
)

// FieldList encapsulates an ordered list of entries of the same field
// type, keeping data as a list. Wire keys carry an explicit index
// ("people-0", "people-2"); indices are wire positions, not array
// positions, so sparse submissions bind in index order without being
// renumbered and round-trip stably. Filters cannot be attached to the
// list itself; declare them on the enclosed template field.
type FieldList struct {
	BaseField

	unbound    *UnboundField
	minEntries int
	maxEntries int

	entries     []Field
	entryErrors [][]string
	lastIndex   int
}

// Entries returns the bound entry fields in order.
func (f *FieldList) Entries() []Field { return f.entries }

// Len returns the number of entries.
func (f *FieldList) Len() int { return len(f.entries) }

// Entry returns the i-th entry.
func (f *FieldList) Entry(i int) Field { return f.entries[i] }

// LastIndex returns the highest wire index assigned so far, -1 before any
// entry exists.
func (f *FieldList) LastIndex() int { return f.lastIndex }

// Data aggregates every entry's coerced data, in order.
func (f *FieldList) Data() any {
	out := make([]any, len(f.entries))
	for i, entry := range f.entries {
		out[i] = entry.Data()
	}
	return out
}

// Process rebuilds the entry list. With wire input present, the distinct
// indices found under this field's key prefix are sorted ascending,
// truncated to the entry cap, and paired in order with the supplied
// object data; otherwise one entry is materialized per object datum with
// sequential indices. The list is then padded with default-initialized
// entries up to the minimum.
func (f *FieldList) Process(formdata Formdata, data any) {
	f.processErrors = nil
	f.entries = nil
	f.lastIndex = -1

	if IsUnset(data) || !truthy(data) {
		data = f.resolveDefault()
	}
	f.objectData = data
	items := anySlice(data)

	// An empty payload binds like an absent one: object data still
	// materializes entries.
	if formdata != nil && len(formdata.Keys()) > 0 {
		indices := extractIndices(f.name, formdata)
		if f.maxEntries > 0 && len(indices) > f.maxEntries {
			indices = indices[:f.maxEntries]
		}
		next := 0
		for _, index := range indices {
			objData := any(Unset)
			if next < len(items) {
				objData = items[next]
				next++
			}
			f.addEntry(formdata, objData, index)
		}
	} else {
		for _, item := range items {
			f.addEntry(nil, item, -1)
		}
	}

	for len(f.entries) < f.minEntries {
		f.addEntry(formdata, Unset, -1)
	}
}

// extractIndices collects the distinct integer index segments of every
// key prefixed by name plus separator. Duplicate keys collapse; the
// result is sorted ascending.
func extractIndices(name string, formdata Formdata) []int {
	prefix := name + "-"
	seen := make(map[int]struct{})
	for _, k := range formdata.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		segment := k[len(prefix):]
		if i := strings.IndexByte(segment, '-'); i >= 0 {
			segment = segment[:i]
		}
		index, ok := parseIndex(segment)
		if !ok {
			continue
		}
		seen[index] = struct{}{}
	}
	indices := make([]int, 0, len(seen))
	for index := range seen {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

// parseIndex accepts decimal digits only; signs and empty segments are
// not wire indices.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Validate validates every entry first, collecting each failing entry's
// error list, then runs the list's own validator chain; entry failures do
// not short-circuit the chain.
func (f *FieldList) Validate(form *Form, extra ...Validator) bool {
	f.errors = nil
	f.entryErrors = nil

	for _, entry := range f.entries {
		if !entry.Validate(form) {
			f.entryErrors = append(f.entryErrors, entry.Errors())
			f.errors = append(f.errors, entry.Errors()...)
		}
	}

	chain := make([]Validator, 0, len(f.validators)+len(extra))
	chain = append(chain, f.validators...)
	chain = append(chain, extra...)
	f.runValidationChain(form, chain)

	return len(f.errors) == 0
}

// EntryErrors returns one error list per failing entry, preserving the
// per-entry structure Errors flattens.
func (f *FieldList) EntryErrors() [][]string { return f.entryErrors }

// PopulateObj zips the existing collection at target's attribute name
// (padded with nil past its end) against the entries, routes each datum
// through the entry field's own PopulateObj via a single-attribute
// carrier so composite entry types destructure correctly, and writes the
// collected list back.
func (f *FieldList) PopulateObj(target any, name string) error {
	existing, _ := getAttr(target, name)
	items := anySlice(existing)

	output := make([]any, 0, len(f.entries))
	for i, entry := range f.entries {
		carrier := &entryCarrier{}
		if i < len(items) {
			carrier.Data = items[i]
		}
		if err := entry.PopulateObj(carrier, "data"); err != nil {
			return err
		}
		output = append(output, carrier.Data)
	}
	return setAttr(target, name, output)
}

type entryCarrier struct {
	Data any
}

// AppendEntry adds an entry at index LastIndex+1 with optional object
// data. Entries added this way never receive formdata. Exceeding the
// entry cap is a programming error and panics.
func (f *FieldList) AppendEntry(data ...any) Field {
	d := any(Unset)
	if len(data) > 0 {
		d = data[0]
	}
	return f.addEntry(nil, d, -1)
}

// PopEntry removes and returns the most recently added entry, stepping
// LastIndex back. Popping an empty list is a programming error and
// panics.
func (f *FieldList) PopEntry() Field {
	if len(f.entries) == 0 {
		panic(configErrorf("fieldlist %q: pop from an empty list", f.name))
	}
	entry := f.entries[len(f.entries)-1]
	f.entries = f.entries[:len(f.entries)-1]
	f.lastIndex--
	return entry
}

func (f *FieldList) addEntry(formdata Formdata, data any, index int) Field {
	if f.maxEntries > 0 && len(f.entries) >= f.maxEntries {
		panic(configErrorf("fieldlist %q: cannot have more than %d entries", f.name, f.maxEntries))
	}
	if index < 0 {
		index = f.lastIndex + 1
	}
	f.lastIndex = index

	name := fmt.Sprintf("%s-%d", f.shortName, index)
	id := fmt.Sprintf("%s-%d", f.id, index)
	entry, err := f.unbound.Bind(nil, name, f.prefix, f.translations, WithMeta(f.meta), WithID(id))
	if err != nil {
		panic(err)
	}
	entry.Process(formdata, data)
	f.entries = append(f.entries, entry)
	return entry
}

// List declares a repeating field over the given template declaration.
func List(field *UnboundField, opts ...Option) *UnboundField {
	return newUnbound("fieldlist", opts, func(cfg *fieldConfig) (Field, error) {
		if field == nil {
			return nil, configErrorf("fieldlist: template field must not be nil")
		}
		if len(cfg.filters) > 0 {
			return nil, configErrorf("fieldlist: does not accept any filters; define them on the enclosed field")
		}
		if cfg.maxEntries > 0 && cfg.minEntries > cfg.maxEntries {
			return nil, configErrorf("fieldlist: min entries %d exceeds max entries %d", cfg.minEntries, cfg.maxEntries)
		}
		return &FieldList{
			unbound:    field,
			minEntries: cfg.minEntries,
			maxEntries: cfg.maxEntries,
			lastIndex:  -1,
		}, nil
	})
}
