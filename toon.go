// Package toon implements TOON (Token-Oriented Object Notation), an
// indentation-significant text serialization format for JSON-equivalent
// data trees.
package toon

import (
	"fmt"
	"reflect"
)

// Marshal normalizes v into a Value (see Normalize) and encodes it.
func Marshal(v any, opts EncodeOptions) (string, error) {
	val, err := Normalize(v)
	if err != nil {
		return "", err
	}
	return Encode(val, opts)
}

// Unmarshal decodes text and assigns the result into out, which must be a
// non-nil pointer.
func Unmarshal(text string, opts DecodeOptions, out any) error {
	val, err := Decode(text, opts)
	if err != nil {
		return err
	}
	return assignValue(val, out)
}

// ResolveEncode validates opts and returns it with every zero field filled
// to its documented default.
func ResolveEncode(opts EncodeOptions) (EncodeOptions, error) {
	ro, err := resolveEncodeOptions(opts)
	if err != nil {
		return EncodeOptions{}, err
	}
	return EncodeOptions{Indent: ro.indent, Delimiter: Delimiter(ro.delimiter), LengthMarker: ro.lengthMarker}, nil
}

// ResolveDecode validates opts and returns it with every zero field filled
// to its documented default.
func ResolveDecode(opts DecodeOptions) (DecodeOptions, error) {
	ro, err := resolveDecodeOptions(opts)
	if err != nil {
		return DecodeOptions{}, err
	}
	return DecodeOptions{Indent: ro.indent, Strict: ro.strict, StrictSet: true}, nil
}

func assignValue(v Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newError(ErrOptionInvalid, 0, "Unmarshal destination must be a non-nil pointer, got %T", dst)
	}
	return assignReflect(v, rv.Elem())
}

func assignReflect(v Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if v.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assignReflect(v, dst.Elem())
	}
	if dst.Kind() == reflect.Interface {
		goVal, err := toGoAny(v)
		if err != nil {
			return err
		}
		if goVal == nil {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		dst.Set(reflect.ValueOf(goVal))
		return nil
	}

	switch v.Kind() {
	case KindNull:
		dst.Set(reflect.Zero(dst.Type()))
		return nil

	case KindBool:
		if dst.Kind() != reflect.Bool {
			return typeMismatch(v, dst)
		}
		dst.SetBool(v.Bool())
		return nil

	case KindNumber:
		switch dst.Kind() {
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(v.Number())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetInt(int64(v.Number()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			dst.SetUint(uint64(v.Number()))
		default:
			return typeMismatch(v, dst)
		}
		return nil

	case KindString:
		if dst.Kind() != reflect.String {
			return typeMismatch(v, dst)
		}
		dst.SetString(v.Str())
		return nil

	case KindArray:
		return assignArray(v.Array(), dst)

	case KindObject:
		switch dst.Kind() {
		case reflect.Struct:
			return assignStruct(v.Object(), dst)
		case reflect.Map:
			return assignMap(v.Object(), dst)
		default:
			return typeMismatch(v, dst)
		}

	default:
		return typeMismatch(v, dst)
	}
}

func assignArray(arr []Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
		for i, el := range arr {
			if err := assignReflect(el, s.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(s)
		return nil
	case reflect.Array:
		if dst.Len() != len(arr) {
			return newError(ErrLengthMismatch, 0, "array has %d element(s), destination %s has %d", len(arr), dst.Type(), dst.Len())
		}
		for i, el := range arr {
			if err := assignReflect(el, dst.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	default:
		return newError(ErrOptionInvalid, 0, "cannot assign array into %s", dst.Type())
	}
}

func assignStruct(obj *Object, dst reflect.Value) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, skip := parseToonTag(field)
		if skip {
			continue
		}
		val, ok := obj.Get(name)
		if !ok {
			continue
		}
		if err := assignReflect(val, dst.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func assignMap(obj *Object, dst reflect.Value) error {
	if dst.Type().Key().Kind() != reflect.String {
		return newError(ErrOptionInvalid, 0, "cannot assign object into map with non-string key type %s", dst.Type().Key())
	}
	elemType := dst.Type().Elem()
	m := reflect.MakeMapWithSize(dst.Type(), obj.Len())
	for i := 0; i < obj.Len(); i++ {
		key, val := obj.At(i)
		ev := reflect.New(elemType).Elem()
		if err := assignReflect(val, ev); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(dst.Type().Key()), ev)
	}
	dst.Set(m)
	return nil
}

// toGoAny converts v into the same untyped shape encoding/json's Unmarshal
// would produce for an `any` destination (map[string]any / []any /
// string / float64 / bool / nil).
func toGoAny(v Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.Bool(), nil
	case KindNumber:
		return v.Number(), nil
	case KindString:
		return v.Str(), nil
	case KindArray:
		arr := v.Array()
		out := make([]any, len(arr))
		for i, el := range arr {
			g, err := toGoAny(el)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case KindObject:
		obj := v.Object()
		out := make(map[string]any, obj.Len())
		for i := 0; i < obj.Len(); i++ {
			k, el := obj.At(i)
			g, err := toGoAny(el)
			if err != nil {
				return nil, err
			}
			out[k] = g
		}
		return out, nil
	default:
		return nil, newError(ErrOptionInvalid, 0, "unknown value kind %s", v.Kind())
	}
}

func typeMismatch(v Value, dst reflect.Value) error {
	return newError(ErrOptionInvalid, 0, "cannot assign %s into %s", v.Kind(), dst.Type())
}
