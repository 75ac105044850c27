package toon

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"
)

// ToValue lets a type supply its own Value representation during
// normalization, bypassing the generic reflect-based walk.
type ToValue interface {
	ToValue() (Value, error)
}

// Normalize converts an arbitrary Go value into the closed Value model that
// Encode consumes. Maps are normalized with their keys sorted, since Go's
// map iteration order is unspecified and TOON's Object requires a
// deterministic one; structs preserve field declaration order via
// "toon:\"name,omitempty\"" tags in the manner of encoding/json.
func Normalize(v any) (Value, error) {
	if v == nil {
		return Null(), nil
	}
	if tv, ok := v.(ToValue); ok {
		return tv.ToValue()
	}
	return normalizeReflect(reflect.ValueOf(v))
}

func normalizeReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		if tv, ok := rv.Interface().(ToValue); ok {
			return tv.ToValue()
		}
		return normalizeReflect(rv.Elem())
	}

	if tv, ok := rv.Interface().(ToValue); ok {
		return tv.ToValue()
	}

	switch t := rv.Interface().(type) {
	case Value:
		return t, nil
	case time.Time:
		return String(t.UTC().Format(time.RFC3339Nano)), nil
	case big.Int:
		return String(t.String()), nil
	case big.Float:
		return String(t.Text('g', -1)), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return normalizeSlice(rv)
	case reflect.Map:
		return normalizeMap(rv)
	case reflect.Struct:
		return normalizeStruct(rv)
	default:
		return Value{}, newError(ErrOptionInvalid, 0, "cannot normalize value of kind %s", rv.Kind())
	}
}

func normalizeSlice(rv reflect.Value) (Value, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return ArrayOf(nil), nil
	}
	elems := make([]Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, err := normalizeReflect(rv.Index(i))
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return ArrayOf(elems), nil
}

func normalizeMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return Value{}, newError(ErrOptionInvalid, 0, "cannot normalize map with non-string key type %s", rv.Type().Key())
	}
	keys := rv.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)

	obj := NewObject()
	for _, name := range names {
		v, err := normalizeReflect(rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())))
		if err != nil {
			return Value{}, err
		}
		obj.Set(name, v)
	}
	return ObjectValue(obj), nil
}

func normalizeStruct(rv reflect.Value) (Value, error) {
	t := rv.Type()
	obj := NewObject()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := parseToonTag(field)
		if skip {
			continue
		}

		fv := rv.Field(i)
		if omitEmpty && isEmptyValue(fv) {
			continue
		}

		v, err := normalizeReflect(fv)
		if err != nil {
			return Value{}, fmt.Errorf("field %s: %w", field.Name, err)
		}
		obj.Set(name, v)
	}
	return ObjectValue(obj), nil
}

func parseToonTag(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := field.Tag.Get("toon")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = field.Name
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	default:
		return false
	}
}
