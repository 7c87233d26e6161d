package goform

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external name used for object binding and population.
// Priority: form tag > json tag name > lower-cased field name; "-"
// disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if ft := sf.Tag.Get("form"); ft != "" {
		if i := strings.IndexByte(ft, ','); i >= 0 {
			return ft[:i]
		}
		return ft
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return strings.ToLower(sf.Name)
}

// normalizeKey folds case and underscores so the form name "first_name"
// matches the struct field FirstName.
func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// structField locates the exported struct field matching name: first an
// exact ResolveStructKey match, then a normalized one.
func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	rt := rv.Type()
	norm := normalizeKey(name)
	var loose reflect.Value
	var looseOK bool
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		if key == name {
			return rv.Field(i), true
		}
		if !looseOK && normalizeKey(key) == norm {
			loose = rv.Field(i)
			looseOK = true
		}
	}
	return loose, looseOK
}

// getAttr reads attribute name from obj, which may be a struct, a pointer
// to struct, or a map keyed by string. The second result reports whether
// the attribute exists.
func getAttr(obj any, name string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if m, ok := obj.(map[string]any); ok {
		v, ok := m[name]
		return v, ok
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv, ok := structField(rv, name)
	if !ok {
		return nil, false
	}
	return fv.Interface(), true
}

// setAttr writes value to attribute name on target, which must be a
// pointer to struct or a map keyed by string. Values are converted to the
// destination type when possible, including element-wise conversion of
// []any into typed slices.
func setAttr(target any, name string, value any) error {
	if target == nil {
		return configErrorf("populate %q: nil target", name)
	}
	if m, ok := target.(map[string]any); ok {
		m[name] = value
		return nil
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return configErrorf("populate %q: target must be a non-nil pointer or map[string]any", name)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return configErrorf("populate %q: target must point at a struct", name)
	}
	fv, ok := structField(rv, name)
	if !ok {
		return configErrorf("populate %q: no matching field on %s", name, rv.Type())
	}
	if !fv.CanSet() {
		return configErrorf("populate %q: field is not settable", name)
	}
	return assignValue(fv, value, name)
}

func assignValue(fv reflect.Value, value any, name string) error {
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	vv := reflect.ValueOf(value)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case vv.Type().ConvertibleTo(fv.Type()) && compatibleKinds(vv.Kind(), fv.Kind()):
		fv.Set(vv.Convert(fv.Type()))
	case fv.Kind() == reflect.Slice && vv.Kind() == reflect.Slice:
		out := reflect.MakeSlice(fv.Type(), vv.Len(), vv.Len())
		for i := 0; i < vv.Len(); i++ {
			elem := vv.Index(i).Interface()
			if err := assignValue(out.Index(i), elem, fmt.Sprintf("%s[%d]", name, i)); err != nil {
				return err
			}
		}
		fv.Set(out)
	default:
		return configErrorf("populate %q: cannot assign %T to %s", name, value, fv.Type())
	}
	return nil
}

// compatibleKinds guards Convert against surprising cross-kind
// conversions such as int -> string.
func compatibleKinds(src, dst reflect.Kind) bool {
	if src == dst {
		return true
	}
	return isNumericKind(src) && isNumericKind(dst)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
