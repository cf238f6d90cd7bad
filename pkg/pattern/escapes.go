package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errUnicodeEscape = errors.New("invalid Unicode escape")

// translateEscapes rewrites the escapes whose JavaScript meaning differs from
// the engine's. In Unicode mode \u{...} becomes a code point, and the
// engine-only anchors \A, \Z, \z and \G are rejected. Outside Unicode mode
// JavaScript reads those anchors as the plain letter.
func translateEscapes(source string, unicode bool) (string, error) {
	if !strings.Contains(source, `\`) {
		return source, nil
	}

	var builder strings.Builder
	builder.Grow(len(source))

	for i := 0; i < len(source); i++ {
		c := source[i]
		if c != '\\' || i+1 >= len(source) {
			builder.WriteByte(c)
			continue
		}

		next := source[i+1]
		switch {
		case next == 'u' && unicode && i+2 < len(source) && source[i+2] == '{':
			end := strings.IndexByte(source[i+3:], '}')
			if end < 0 {
				return "", errUnicodeEscape
			}
			escape, err := codePointEscape(source[i+3 : i+3+end])
			if err != nil {
				return "", err
			}
			builder.WriteString(escape)
			i += 3 + end
			continue

		case strings.IndexByte("AZzG", next) >= 0:
			if unicode {
				return "", fmt.Errorf("invalid escape \\%c", next)
			}
			builder.WriteByte(next)

		default:
			builder.WriteByte(c)
			builder.WriteByte(next)
		}
		i++
	}

	return builder.String(), nil
}

// codePointEscape turns the hex digits of \u{...} into an escape the engine
// understands: \uXXXX in the basic plane, the character itself above it.
func codePointEscape(hex string) (string, error) {
	if hex == "" || len(hex) > 6 {
		return "", errUnicodeEscape
	}
	cp, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || cp > utf8.MaxRune {
		return "", errUnicodeEscape
	}
	if cp <= 0xFFFF {
		return fmt.Sprintf(`\u%04X`, cp), nil
	}
	return string(rune(cp)), nil
}
