package goform

// unsetType is the sentinel distinguishing "no value supplied" from an
// explicit nil. Form construction passes Unset for fields the source
// object and data map do not cover, which makes the field fall back to
// its declared default.
type unsetType struct{}

func (unsetType) String() string { return "<unset>" }

// Unset is the missing-value sentinel accepted by Field.Process.
var Unset = unsetType{}

// IsUnset reports whether v is the Unset sentinel.
func IsUnset(v any) bool {
	_, ok := v.(unsetType)
	return ok
}
