package decop

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Value is a raw reply token as printed by the command line, e.g. "#t",
// "12.5", "3" or "\"DL pro\"".
type Value string

// Bool decodes "#t" / "#f".
func (v Value) Bool() (bool, error) {
	switch strings.TrimSpace(string(v)) {
	case "#t", "#T":
		return true, nil
	case "#f", "#F":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrMalformedReply, string(v))
	}
}

// Float decodes a real or integer reply.
func (v Value) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedReply, string(v))
	}
	return f, nil
}

// Int decodes an integer reply.
func (v Value) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedReply, string(v))
	}
	return n, nil
}

// Text decodes a double-quoted string reply.
func (v Value) Text() (string, error) {
	s := strings.TrimSpace(string(v))
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedReply, string(v))
	}
	unq, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrMalformedReply, string(v), err)
	}
	return unq, nil
}

// Encode renders a Go value as a command-line literal. Named integer types
// (channels, user levels) encode as their numeric value.
func Encode(value any) (string, error) {
	switch v := value.(type) {
	case Value:
		return string(v), nil
	case bool:
		if v {
			return "#t", nil
		}
		return "#f", nil
	case string:
		return strconv.Quote(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatReal(rv.Float()), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// formatReal keeps a decimal point so the firmware parses a REAL, not an INTEGER.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
