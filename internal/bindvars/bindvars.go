// Package bindvars locates Oracle bind variables (:name, :1) in command text.
package bindvars

import (
	"strings"
)

// IsPLSQL reports whether text is an anonymous PL/SQL block.
// Oracle binds PL/SQL blocks by unique name and plain SQL by occurrence.
func IsPLSQL(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	return strings.HasPrefix(upper, "BEGIN") || strings.HasPrefix(upper, "DECLARE")
}

// Key normalizes a bind name for comparison. Unquoted Oracle identifiers are
// case-insensitive.
func Key(name string) string {
	return strings.ToUpper(strings.TrimPrefix(name, ":"))
}

// Parse returns the bind variable names of text in binding order.
//
// Placeholders inside string literals, q-quoted literals, quoted identifiers and
// comments are ignored, as is the PL/SQL assignment operator :=.
// For PL/SQL blocks every name is listed once, at its first appearance.
func Parse(text string) (names []string) {
	var (
		s      = scanner{src: text, n: len(text)}
		unique = IsPLSQL(text)
		seen   map[string]struct{}
	)
	if unique {
		seen = make(map[string]struct{})
	}

	for s.i < s.n {
		c := s.src[s.i]
		switch c {
		case '-':
			if s.peek(1) == '-' {
				s.skipLine()
				continue
			}
		case '/':
			if s.peek(1) == '*' {
				s.skipBlockComment()
				continue
			}
		case '\'':
			s.skipQuoted('\'')
			continue
		case '"':
			s.skipQuoted('"')
			continue
		case 'q', 'Q', 'n', 'N':
			if s.skipOracleQ() {
				continue
			}
			// an identifier such as "seq" or "name" must not be split
			s.skipWord()
			continue
		case ':':
			if name := s.placeholder(); name != "" {
				if unique {
					key := Key(name)
					if _, ok := seen[key]; ok {
						continue
					}
					seen[key] = struct{}{}
				}
				names = append(names, name)
				continue
			}
		default:
			if isNameStart(c) {
				s.skipWord()
				continue
			}
		}
		s.i++
	}
	return
}

type scanner struct {
	src  string
	n, i int
}

func (s *scanner) peek(k int) byte {
	if s.i+k < s.n {
		return s.src[s.i+k]
	}
	return 0
}

func (s *scanner) skipLine() {
	for s.i < s.n && s.src[s.i] != '\n' {
		s.i++
	}
}

func (s *scanner) skipBlockComment() {
	s.i += 2
	for s.i < s.n {
		if s.src[s.i] == '*' && s.peek(1) == '/' {
			s.i += 2
			return
		}
		s.i++
	}
}

// skipQuoted consumes a literal delimited by quote; a doubled quote is an escape.
func (s *scanner) skipQuoted(quote byte) {
	s.i++
	for s.i < s.n {
		c := s.src[s.i]
		s.i++
		if c == quote {
			if s.i < s.n && s.src[s.i] == quote {
				s.i++
				continue
			}
			return
		}
	}
}

// skipOracleQ consumes q'[...]' style literals (also nq'...'). It reports
// false when the current position does not start one.
func (s *scanner) skipOracleQ() bool {
	j := s.i
	if c := s.src[j]; c == 'n' || c == 'N' {
		j++
		if j >= s.n || (s.src[j] != 'q' && s.src[j] != 'Q') {
			if j < s.n && s.src[j] == '\'' {
				s.i = j
				s.skipQuoted('\'')
				return true
			}
			return false
		}
	}
	if j+2 >= s.n || s.src[j+1] != '\'' {
		return false
	}
	open := s.src[j+2]
	closing := open
	switch open {
	case '[':
		closing = ']'
	case '{':
		closing = '}'
	case '<':
		closing = '>'
	case '(':
		closing = ')'
	}
	s.i = j + 3
	for s.i < s.n {
		if s.src[s.i] == closing && s.peek(1) == '\'' {
			s.i += 2
			return true
		}
		s.i++
	}
	return true
}

func (s *scanner) skipWord() {
	for s.i < s.n && isNamePart(s.src[s.i]) {
		s.i++
	}
}

// placeholder consumes ":name" or ":123" and returns the name without the colon.
func (s *scanner) placeholder() string {
	start := s.i + 1
	if start >= s.n {
		return ""
	}
	end := start
	switch c := s.src[start]; {
	case isDigit(c):
		for end < s.n && isDigit(s.src[end]) {
			end++
		}
	case isNameStart(c):
		for end < s.n && isNamePart(s.src[end]) {
			end++
		}
	default:
		return ""
	}
	s.i = end
	return s.src[start:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c >= 0x80
}

func isNamePart(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '$' || c == '#'
}
