package publisher

import (
	"github.com/commentator-run/commentator/pkg/github"
	"github.com/commentator-run/commentator/pkg/log"
	"github.com/commentator-run/commentator/pkg/metadata"
)

// SelectTarget scans comments in listing order and returns the id of the
// comment the policy wants edited, if any. Comments without a marker are
// foreign and ignored. Comments with a malformed marker are logged and
// skipped rather than failing the run. When several comments match, the
// last one in listing order wins, which for GitHub's comment listing is
// the newest.
func SelectTarget(comments []github.IssueComment, policy OverwritePolicy) (int64, bool) {
	if policy.Mode == OverwriteNever {
		return 0, false
	}

	var (
		targetID int64
		found    bool
	)
	for _, comment := range comments {
		managed, identifier, err := metadata.Decode(comment.Body)
		if err != nil {
			log.Warnf("skipping comment %d with malformed metadata marker: %v", comment.ID, err)
			continue
		}
		if !managed {
			continue
		}

		switch policy.Mode {
		case OverwriteAlways:
			targetID, found = comment.ID, true
		case OverwriteUsingIdentifier:
			if identifierMatches(identifier, policy.Identifier) {
				targetID, found = comment.ID, true
			}
		}
	}
	return targetID, found
}

func identifierMatches(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
