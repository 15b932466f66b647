// pkg/cli/parse.go
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"minirel/pkg/types"
)

// tokenize splits a command tail on spaces, keeping double-quoted
// stretches together and stripping the quotes.
func tokenize(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			if inQuote {
				out = append(out, cur.String())
				cur.Reset()
			}
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// splitList splits a comma list, trimming each element.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// stripAs removes a trailing "AS name" pair, returning the remaining
// tokens and the name (empty if absent).
func stripAs(args []string) ([]string, string) {
	if len(args) >= 2 && strings.EqualFold(args[len(args)-2], "AS") {
		return args[:len(args)-2], args[len(args)-1]
	}
	return args, ""
}

// parseValue parses a literal according to the attribute's domain.
func parseValue(d types.ValueType, lit string) (types.Value, error) {
	switch d {
	case types.TypeInt8:
		i, err := strconv.ParseInt(lit, 10, 8)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad int8 %q", lit)
		}
		return types.NewInt8(int8(i)), nil
	case types.TypeInt16:
		i, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad int16 %q", lit)
		}
		return types.NewInt16(int16(i)), nil
	case types.TypeInt32:
		i, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad int32 %q", lit)
		}
		return types.NewInt32(int32(i)), nil
	case types.TypeInt64:
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad int64 %q", lit)
		}
		return types.NewInt64(i), nil
	case types.TypeFloat32:
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad float32 %q", lit)
		}
		return types.NewFloat32(float32(f)), nil
	case types.TypeFloat64:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("bad float64 %q", lit)
		}
		return types.NewFloat64(f), nil
	case types.TypeChar:
		runes := []rune(lit)
		if len(runes) != 1 {
			return types.Value{}, fmt.Errorf("bad char %q", lit)
		}
		return types.NewChar(runes[0]), nil
	case types.TypeText:
		return types.NewText(lit), nil
	default:
		return types.Value{}, fmt.Errorf("unknown domain %d", d)
	}
}
