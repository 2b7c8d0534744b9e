package jcrxml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EncodeName escapes a JCR name into a valid XML name following ISO 9075:
// characters that are not allowed are written as "_xHHHH_". The prefix of a
// qualified name is kept as is.
func EncodeName(name string) string {
	prefix, local := splitQualified(name)
	if local == "" {
		return name
	}

	var b strings.Builder
	for i, r := range local {
		switch {
		case r == '_' && isEscapeSequence(local[i:]):
			// a literal "_xHHHH_" has its underscore escaped
			b.WriteString("_x005f_")
		case (i == 0 && !isNameStart(r)) || !isNameChar(r):
			fmt.Fprintf(&b, "_x%04x_", r)
		default:
			b.WriteRune(r)
		}
	}

	if prefix == "" {
		return b.String()
	}
	return prefix + ":" + b.String()
}

// DecodeName reverses EncodeName.
func DecodeName(name string) string {
	if !strings.Contains(name, "_x") {
		return name
	}

	var b strings.Builder
	for i := 0; i < len(name); {
		if name[i] == '_' && isEscapeSequence(name[i:]) {
			code, _ := strconv.ParseUint(name[i+2:i+6], 16, 32)
			b.WriteRune(rune(code))
			i += 7
			continue
		}
		r, size := utf8.DecodeRuneInString(name[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

func splitQualified(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func isEscapeSequence(s string) bool {
	if len(s) < 7 || s[0] != '_' || s[1] != 'x' || s[6] != '_' {
		return false
	}
	for _, c := range s[2:6] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
