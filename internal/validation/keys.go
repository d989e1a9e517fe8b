// Package validation checks the key set of a submitted JSON payload
// against the keys an endpoint expects.
package validation

import (
	"github.com/nc-news-api/internal/apperr"
)

// Mode selects how received keys are compared against expected keys
type Mode int

const (
	// MatchExact requires the received and expected key sets to be equal.
	// Used for strict payload shapes, e.g. comment creation.
	MatchExact Mode = iota

	// MatchSubset requires a non-empty received set whose every key is a
	// member of the expected set. Used for partial-update payloads; an
	// update with zero keys is rejected.
	MatchSubset
)

// Keys validates the received key set against the expected set under the
// given mode. Comparison is on distinct keys; order and duplicates are
// irrelevant. Failure is a 400 "Invalid or missing keys".
func Keys(received, expected []string, mode Mode) error {
	receivedSet := toSet(received)
	expectedSet := toSet(expected)

	switch mode {
	case MatchExact:
		if len(receivedSet) == len(expectedSet) && isSubset(receivedSet, expectedSet) {
			return nil
		}
	case MatchSubset:
		if len(receivedSet) > 0 && isSubset(receivedSet, expectedSet) {
			return nil
		}
	}

	return apperr.BadRequest("Invalid or missing keys")
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func isSubset(sub, super map[string]struct{}) bool {
	for k := range sub {
		if _, ok := super[k]; !ok {
			return false
		}
	}
	return true
}
