package pdf

import (
	"strconv"
	"strings"
)

type tokKind int

const (
	tokNumber tokKind = iota
	tokString
	tokName
	tokOperator
	tokArrayOpen
	tokArrayClose
)

type token struct {
	kind tokKind
	str  string
	num  float64
}

// tokenize splits a content stream into operands and operators. Dict
// delimiters and inline image data are skipped; they carry nothing the
// interpreter needs.
func tokenize(data []byte) []token {
	var toks []token
	i := 0
	n := len(data)

	for i < n {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			for i < n && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, next := scanString(data, i)
			toks = append(toks, token{kind: tokString, str: s})
			i = next
		case c == '<':
			if i+1 < n && data[i+1] == '<' {
				i += 2
			} else {
				s, next := scanHexString(data, i)
				toks = append(toks, token{kind: tokString, str: s})
				i = next
			}
		case c == '>':
			if i+1 < n && data[i+1] == '>' {
				i += 2
			} else {
				i++
			}
		case c == '[':
			toks = append(toks, token{kind: tokArrayOpen})
			i++
		case c == ']':
			toks = append(toks, token{kind: tokArrayClose})
			i++
		case c == '/':
			j := i + 1
			for j < n && !isDelimiter(data[j]) && !isWhitespace(data[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, str: string(data[i+1 : j])})
			i = j
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < n && (data[j] == '.' || (data[j] >= '0' && data[j] <= '9')) {
				j++
			}
			v, err := strconv.ParseFloat(string(data[i:j]), 64)
			if err == nil {
				toks = append(toks, token{kind: tokNumber, num: v})
			}
			i = j
		default:
			j := i + 1
			for j < n && !isDelimiter(data[j]) && !isWhitespace(data[j]) {
				j++
			}
			op := string(data[i:j])
			i = j
			if op == "BI" {
				// Inline image: skip to the EI marker.
				i = skipInlineImage(data, i)
				continue
			}
			toks = append(toks, token{kind: tokOperator, str: op})
		}
	}
	return toks
}

// scanString reads a parenthesized string literal, honoring escapes
// and balanced nested parens. Returns the decoded text and the index
// past the closing paren.
func scanString(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch data[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// formatting escapes, no text value
			case '\\', '(', ')':
				sb.WriteByte(data[i])
			default:
				if data[i] >= '0' && data[i] <= '7' {
					val := int(data[i] - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(data[i])
				}
			}
			i++
		case c == '(':
			if depth > 0 {
				sb.WriteByte(c)
			}
			depth++
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

// scanHexString reads a <...> hex string, decoding byte pairs as
// Latin-1 text.
func scanHexString(data []byte, start int) (string, int) {
	var hexDigits []byte
	i := start + 1
	for i < len(data) && data[i] != '>' {
		c := data[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			hexDigits = append(hexDigits, c)
		}
		i++
	}
	if i < len(data) {
		i++ // consume '>'
	}
	if len(hexDigits)%2 == 1 {
		hexDigits = append(hexDigits, '0')
	}
	var sb strings.Builder
	for j := 0; j+1 < len(hexDigits); j += 2 {
		hi := hexVal(hexDigits[j])
		lo := hexVal(hexDigits[j+1])
		b := byte(hi<<4 | lo)
		if b >= 0x20 && b < 0x7f {
			sb.WriteByte(b)
		}
	}
	return sb.String(), i
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// skipInlineImage advances past binary inline-image data to the EI
// operator.
func skipInlineImage(data []byte, start int) int {
	for i := start; i+1 < len(data); i++ {
		if data[i] == 'E' && data[i+1] == 'I' &&
			(i == 0 || isWhitespace(data[i-1])) &&
			(i+2 >= len(data) || isWhitespace(data[i+2])) {
			return i + 2
		}
	}
	return len(data)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
