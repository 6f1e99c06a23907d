// Package typestr provides the small string-level type manipulation
// module the design notes (§9) call for: types stay opaque strings to the
// core, but splitting generic arguments, checking for parentheses, and
// mapping a source type string to its target spelling are common enough
// to deserve one shared implementation instead of being reinvented by
// every pass and by the emitter.
//
// Grounded on the teacher's internal/transpiler/types.go, which parses Go
// type strings into a small structured Type via ParseType; this package
// keeps the same split/parse approach but maps source (Swift-like)
// spellings to target (Kotlin-like) spellings per spec §4.7's
// type-translation table, rather than parsing Go syntax.
package typestr

import "strings"

// IsOptional reports whether s ends in a single trailing `?` that isn't
// part of `??` (double-optional, flagged separately by the warning pass).
func IsOptional(s string) bool {
	return strings.HasSuffix(s, "?") && !strings.HasSuffix(s, "??")
}

// StripOptional removes one trailing `?`, if present.
func StripOptional(s string) string {
	if IsOptional(s) {
		return s[:len(s)-1]
	}
	return s
}

// IsParenthesized reports whether s is fully wrapped in a single balanced
// pair of parentheses.
func IsParenthesized(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// SplitGenericArgs splits "Outer<A, B<C,D>>" into ("Outer", ["A", "B<C,D>"]).
// Returns (s, nil) if s has no top-level generic application.
func SplitGenericArgs(s string) (base string, args []string) {
	open := strings.IndexAny(s, "<[")
	if open == -1 {
		return s, nil
	}
	closeCh := byte('>')
	if s[open] == '[' {
		closeCh = ']'
	}
	if s[len(s)-1] != closeCh {
		return s, nil
	}
	base = s[:open]
	inner := s[open+1 : len(s)-1]

	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return base, args
}

// namedMap maps the named source spellings (`Array`, `Dictionary`,
// `Void`, ...) to their target spellings; the `[T]`/`[K:V]` literal
// sugar is handled separately in MapType.
var namedMap = map[string]string{
	"Array":      "List",
	"MutableArray": "MutableList",
	"Dictionary": "Map",
	"Void":       "Unit",
	"()":         "Unit",
}

// MapType rewrites a source type spelling into its target spelling,
// recursing through generic arguments. This is the one place §4.7's
// "Type translation" table lives.
func MapType(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " throws")

	if IsOptional(s) {
		return MapType(StripOptional(s)) + "?"
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := s[1 : len(s)-1]
		if k, v, ok := splitDictSugar(inner); ok {
			return "Map<" + MapType(k) + ", " + MapType(v) + ">"
		}
		return "List<" + MapType(inner) + ">"
	}

	if mapped, ok := namedMap[s]; ok {
		return mapped
	}

	if isFuncType(s) {
		return mapFuncType(s)
	}

	base, args := SplitGenericArgs(s)
	if args == nil {
		return s
	}
	if mapped, ok := namedMap[base]; ok {
		base = mapped
	}
	if len(args) == 2 && base == "Tuple" {
		base = "Pair"
	}
	mappedArgs := make([]string, len(args))
	for i, a := range args {
		mappedArgs[i] = MapType(a)
	}
	return base + "<" + strings.Join(mappedArgs, ", ") + ">"
}

func splitDictSugar(inner string) (key, value string, ok bool) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case ':':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return "", "", false
}

func isFuncType(s string) bool {
	return strings.Contains(s, "->") && IsParenthesized(strings.TrimSpace(strings.SplitN(s, "->", 2)[0]))
}

func mapFuncType(s string) string {
	parts := strings.SplitN(s, "->", 2)
	paramsPart := strings.TrimSpace(parts[0])
	resultPart := strings.TrimSpace(parts[1])

	inner := strings.TrimSuffix(strings.TrimPrefix(paramsPart, "("), ")")
	var mappedParams []string
	if strings.TrimSpace(inner) != "" {
		depth := 0
		start := 0
		for i := 0; i < len(inner); i++ {
			switch inner[i] {
			case '<', '[', '(':
				depth++
			case '>', ']', ')':
				depth--
			case ',':
				if depth == 0 {
					mappedParams = append(mappedParams, MapType(inner[start:i]))
					start = i + 1
				}
			}
		}
		mappedParams = append(mappedParams, MapType(inner[start:]))
	}

	result := MapType(resultPart)
	return "(" + strings.Join(mappedParams, ", ") + ") -> " + result
}

// IsBuiltinIntegerFamily reports whether name is one of the source's
// integer-raw-value-capable families, consulted by the Implicit Raw
// Values recording pass.
func IsBuiltinIntegerFamily(name string) bool {
	switch name {
	case "Int", "Int8", "Int16", "Int32", "Int64", "UInt":
		return true
	}
	return false
}

// IsBuiltinStringFamily reports the same for the string raw-value family.
func IsBuiltinStringFamily(name string) bool { return name == "String" }
