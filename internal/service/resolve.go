package service

import "strings"

// Resolve maps a task reference to exactly one task identifier in tasks.
//
// An identifier equal to ref wins outright, even if ref is also a prefix of
// other identifiers. Otherwise ref is matched as a literal, case-sensitive
// prefix. Returns ErrEmptyReference, *NotFoundError or *AmbiguousError.
func Resolve(ref string, tasks []Task) (string, error) {
	if ref == "" {
		return "", ErrEmptyReference
	}

	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Ref: ref, Matches: matches}
	}
}
