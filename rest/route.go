package rest

import (
	"fmt"
	"net/url"
	"strings"
)

// segmentType distinguishes the two kinds of pattern segments.
type segmentType int

const (
	segmentLiteral segmentType = iota
	segmentParam
)

// segment is one /-delimited token of a compiled route pattern: either a
// literal that must match the request path segment exactly, or a named
// capture that binds the decoded path segment to a parameter.
type segment struct {
	typ  segmentType
	name string
}

// Route is a registered (method, pattern, handler chain) triple. Routes
// are immutable once registered and owned exclusively by their Server.
type Route struct {
	method   string
	pattern  string
	segments []segment
	handlers []Handler
}

// Method returns the HTTP method the route is registered under.
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the original pattern string the route was registered
// with.
func (r *Route) Pattern() string {
	return r.pattern
}

// Params returns the named capture segments of the route pattern, in
// order.
func (r *Route) Params() []string {
	var names []string
	for _, s := range r.segments {
		if s.typ == segmentParam {
			names = append(names, s.name)
		}
	}
	return names
}

// compilePattern parses a route pattern into its typed segment list.
// Compilation happens once, at registration time. It returns an error
// for an empty pattern, a pattern without a leading slash, a colon with
// no name behind it, or a capture name used twice.
func compilePattern(pattern string) ([]segment, error) {
	if pattern == "" {
		return nil, fmt.Errorf("rest: empty route pattern")
	}
	if pattern[0] != '/' {
		return nil, fmt.Errorf("rest: route pattern %q must begin with a slash", pattern)
	}

	raw := splitPath(pattern)
	segments := make([]segment, 0, len(raw))
	seen := make(map[string]struct{})

	for _, tok := range raw {
		if !strings.HasPrefix(tok, ":") {
			segments = append(segments, segment{typ: segmentLiteral, name: tok})
			continue
		}

		name := tok[1:]
		if name == "" {
			return nil, fmt.Errorf("rest: missing parameter name in route pattern %q", pattern)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("rest: duplicate parameter %q in route pattern %q", name, pattern)
		}
		seen[name] = struct{}{}
		segments = append(segments, segment{typ: segmentParam, name: name})
	}

	return segments, nil
}

// match tests the route against a sanitized request path. On success it
// returns the extracted named parameters, which may be empty. Matching
// walks the compiled segment list pairwise against the path segments:
// counts must agree, literals must equal the decoded path segment, and
// captures bind the decoded path segment under their name.
func (r *Route) match(path string) (map[string]string, bool) {
	// A path equal to the pattern text cannot contain capture segments
	// or encoded characters that matter, so it matches trivially.
	if path == r.pattern {
		return map[string]string{}, true
	}

	parts := splitPath(path)
	if len(parts) != len(r.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range r.segments {
		part := decodeSegment(parts[i])
		switch seg.typ {
		case segmentLiteral:
			if seg.name != part {
				return nil, false
			}
		case segmentParam:
			params[seg.name] = part
		}
	}

	return params, true
}

// splitPath breaks a sanitized path or pattern into its /-delimited
// tokens. The root path has no tokens.
func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// decodeSegment decodes a path segment as a URL component. A segment
// that fails to decode is compared raw; it can still match a literal
// that happens to contain the undecodable text.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
