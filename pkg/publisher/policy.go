package publisher

import "fmt"

// OverwriteMode controls whether an existing managed comment is edited in
// place or a new comment is always created.
type OverwriteMode string

const (
	// OverwriteNever always creates a new comment, even when a managed
	// comment already exists on the PR.
	OverwriteNever OverwriteMode = "never"
	// OverwriteAlways edits the newest managed comment on the PR,
	// whatever identifier its marker carries.
	OverwriteAlways OverwriteMode = "always"
	// OverwriteUsingIdentifier edits the newest managed comment whose
	// marker carries exactly the configured identifier.
	OverwriteUsingIdentifier OverwriteMode = "using-identifier"
)

// ParseOverwriteMode converts a user-supplied mode string into an
// OverwriteMode.
func ParseOverwriteMode(s string) (OverwriteMode, error) {
	switch OverwriteMode(s) {
	case OverwriteNever, OverwriteAlways, OverwriteUsingIdentifier:
		return OverwriteMode(s), nil
	default:
		return "", fmt.Errorf("invalid overwrite mode %q (expected never, always or using-identifier)", s)
	}
}

// OverwritePolicy is a mode plus the identifier the using-identifier mode
// matches on. The identifier is also stamped into the marker of whatever
// comment the run writes, so later runs can find it again.
type OverwritePolicy struct {
	Mode       OverwriteMode
	Identifier *string
}

// NeverOverwrite returns a policy that always creates a new comment.
func NeverOverwrite() OverwritePolicy {
	return OverwritePolicy{Mode: OverwriteNever}
}

// AlwaysOverwrite returns a policy that edits any managed comment.
func AlwaysOverwrite() OverwritePolicy {
	return OverwritePolicy{Mode: OverwriteAlways}
}

// OverwriteWithIdentifier returns a policy that only edits a managed
// comment carrying exactly the given identifier.
func OverwriteWithIdentifier(id string) OverwritePolicy {
	return OverwritePolicy{Mode: OverwriteUsingIdentifier, Identifier: &id}
}
