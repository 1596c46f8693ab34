package sync

import "strings"

// Abbreviated identifiers from annotations written by older tooling match as
// prefixes of full-length identifiers, but only above this length and only
// when the prefix resolves to a single candidate.
const minimumAbbreviatedIdentifierLengthConstant = 7

// ComputeMissingIdentifiers returns the entries of sourceIdentifiers with no
// matching entry in targetIdentifiers, preserving source order. An entry
// matches on string equality, or as an unambiguous abbreviated prefix of a
// full-length identifier.
func ComputeMissingIdentifiers(sourceIdentifiers []string, targetIdentifiers []string) []string {
	missingIdentifiers := []string{}
	for _, sourceIdentifier := range sourceIdentifiers {
		if identifierPresent(sourceIdentifier, targetIdentifiers) {
			continue
		}
		missingIdentifiers = append(missingIdentifiers, sourceIdentifier)
	}
	return missingIdentifiers
}

func identifierPresent(candidateIdentifier string, targetIdentifiers []string) bool {
	abbreviatedMatchCount := 0
	for _, targetIdentifier := range targetIdentifiers {
		if candidateIdentifier == targetIdentifier {
			return true
		}
		if identifiersShareAbbreviatedPrefix(candidateIdentifier, targetIdentifier) {
			abbreviatedMatchCount++
		}
	}
	return abbreviatedMatchCount == 1
}

func identifiersShareAbbreviatedPrefix(firstIdentifier string, secondIdentifier string) bool {
	shorterIdentifier := firstIdentifier
	longerIdentifier := secondIdentifier
	if len(shorterIdentifier) > len(longerIdentifier) {
		shorterIdentifier, longerIdentifier = longerIdentifier, shorterIdentifier
	}
	if len(shorterIdentifier) < minimumAbbreviatedIdentifierLengthConstant {
		return false
	}
	if len(shorterIdentifier) == len(longerIdentifier) {
		return false
	}
	return strings.HasPrefix(longerIdentifier, shorterIdentifier)
}
