// Package metadata embeds a machine-readable marker inside otherwise
// human-readable comment bodies. The marker is an HTML comment carrying a
// fixed tag and an optional identifier, so it never shows up in rendered
// markdown but lets later runs recognize comments they manage.
package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// markerTag is the fixed literal identifying a managed comment.
	markerTag = "<!-- commentator : "
	// markerEnd terminates the marker.
	markerEnd = " -->"
)

// ErrTruncatedMarker reports a marker whose terminator is missing.
var ErrTruncatedMarker = fmt.Errorf("metadata marker is truncated: missing %q terminator", strings.TrimSpace(markerEnd))

// Encode appends the metadata marker to body. The identifier may be nil,
// which records a managed comment with no identifier. The visible rendering
// of body is unchanged because HTML comments are not rendered.
//
// Encode never fails: the payload is the JSON encoding of an optional
// string, which is total over valid identifiers. Identifiers that could
// forge the marker terminator are rejected up front by ValidIdentifier.
func Encode(body string, identifier *string) string {
	payload, _ := json.Marshal(identifier)
	return body + "\n\n" + markerTag + string(payload) + markerEnd
}

// Decode scans body for the metadata marker.
//
// The first return value reports whether the marker tag is present at all;
// a foreign comment yields (false, nil, nil) and is not an error. When the
// tag is present but the marker is truncated or its payload does not parse,
// Decode returns (true, nil, err) so callers can skip the comment without
// treating it as unmanaged.
func Decode(body string) (found bool, identifier *string, err error) {
	start := strings.Index(body, markerTag)
	if start < 0 {
		return false, nil, nil
	}

	rest := body[start+len(markerTag):]
	end := strings.Index(rest, "-->")
	if end < 0 {
		return true, nil, ErrTruncatedMarker
	}

	payload := strings.TrimSpace(rest[:end])
	if err := json.Unmarshal([]byte(payload), &identifier); err != nil {
		return true, nil, fmt.Errorf("parse metadata payload %q: %w", payload, err)
	}

	return true, identifier, nil
}

// ValidIdentifier reports whether id can travel inside the marker without
// breaking it. Callers must validate identifiers before Encode; Encode
// itself has no failure path.
func ValidIdentifier(id string) bool {
	return !strings.Contains(id, "-->")
}
