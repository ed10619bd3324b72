package openapi

import "strings"

// paramSigil marks a parameter segment in framework route syntax.
const paramSigil = ':'

// TranslatePath converts a framework route path such as "/users/:id" into
// an OpenAPI path template such as "/users/{id}". Only whole segments that
// start with the sigil are rewritten; empty segments are kept, so leading
// and trailing slashes survive.
//
// See: https://spec.openapis.org/oas/v3.0.3#path-templating
func TranslatePath(path string) string {
	if strings.IndexByte(path, paramSigil) < 0 {
		return path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) > 0 && seg[0] == paramSigil {
			segments[i] = "{" + seg[1:] + "}"
		}
	}

	return strings.Join(segments, "/")
}

// PathParams returns the parameter names declared in a framework route
// path, in segment order.
func PathParams(path string) []string {
	var names []string
	for seg := range strings.SplitSeq(path, "/") {
		if len(seg) > 0 && seg[0] == paramSigil {
			names = append(names, seg[1:])
		}
	}
	return names
}
