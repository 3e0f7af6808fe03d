package router

import (
	"fmt"
	"strconv"
	"strings"
)

type segmentKind int

const (
	segLiteral segmentKind = iota
	segNum                 // one or more ASCII digits, exposed as an integer
	segUpper               // one or more uppercase ASCII letters
	segLower               // one or more lowercase ASCII letters
	segRest                // greedy remainder, may span slashes; final segment only
)

type segment struct {
	kind    segmentKind
	literal string
	name    string
}

// Pattern is a compiled URL template made of typed path segments, e.g.
// /framework-logs/{fid:num}/{type:lower}/{lines:num}. Compiled once at route
// registration and immutable afterwards.
type Pattern struct {
	raw      string
	segments []segment
}

// Compile parses a pattern string into typed segments. Placeholders take the
// form {name:kind} with kind one of num, upper, lower, rest. A rest
// placeholder must terminate the pattern.
func Compile(pattern string) (*Pattern, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must start with /", pattern)
	}

	compiled := &Pattern{raw: pattern}
	if pattern == "/" {
		return compiled, nil
	}

	parts := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	names := map[string]struct{}{}
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("pattern %q has an empty segment", pattern)
		}
		if !strings.HasPrefix(part, "{") {
			if strings.ContainsAny(part, "{}") {
				return nil, fmt.Errorf("pattern %q has a malformed segment %q", pattern, part)
			}
			compiled.segments = append(compiled.segments, segment{kind: segLiteral, literal: part})
			continue
		}

		if !strings.HasSuffix(part, "}") {
			return nil, fmt.Errorf("pattern %q has an unterminated placeholder %q", pattern, part)
		}
		name, kindName, ok := strings.Cut(part[1:len(part)-1], ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("pattern %q placeholder %q needs name:kind", pattern, part)
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("pattern %q repeats parameter %q", pattern, name)
		}
		names[name] = struct{}{}

		var kind segmentKind
		switch kindName {
		case "num":
			kind = segNum
		case "upper":
			kind = segUpper
		case "lower":
			kind = segLower
		case "rest":
			kind = segRest
		default:
			return nil, fmt.Errorf("pattern %q has unknown segment kind %q", pattern, kindName)
		}
		if kind == segRest && i != len(parts)-1 {
			return nil, fmt.Errorf("pattern %q uses rest before the final segment", pattern)
		}
		compiled.segments = append(compiled.segments, segment{kind: kind, name: name})
	}

	return compiled, nil
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// Match tests a request path against the pattern and extracts parameters.
func (p *Pattern) Match(path string) (Params, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	if p.raw == "/" {
		if path == "/" {
			return Params{}, true
		}
		return nil, false
	}

	remainder := strings.TrimPrefix(path, "/")
	params := Params{}
	for i, seg := range p.segments {
		if seg.kind == segRest {
			params[seg.name] = remainder
			return params, true
		}

		var part string
		if i == len(p.segments)-1 {
			if strings.Contains(remainder, "/") {
				return nil, false
			}
			part, remainder = remainder, ""
		} else {
			var ok bool
			part, remainder, ok = strings.Cut(remainder, "/")
			if !ok {
				return nil, false
			}
		}

		switch seg.kind {
		case segLiteral:
			if part != seg.literal {
				return nil, false
			}
		case segNum:
			if !allBytes(part, isDigit) {
				return nil, false
			}
			params[seg.name] = part
		case segUpper:
			if !allBytes(part, isUpper) {
				return nil, false
			}
			params[seg.name] = part
		case segLower:
			if !allBytes(part, isLower) {
				return nil, false
			}
			params[seg.name] = part
		}
	}

	return params, true
}

// Params holds the typed values extracted from a matched path.
type Params map[string]string

// Get returns the raw string value of a parameter.
func (p Params) Get(name string) string {
	return p[name]
}

// Int returns a num parameter as an integer. Matching already constrained the
// value to ASCII digits, so parse failures only occur for absurd lengths.
func (p Params) Int(name string) (int64, error) {
	value, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("parameter %q not matched", name)
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return parsed, nil
}

func allBytes(s string, valid func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !valid(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
