package sync

import (
	"fmt"
	"regexp"
)

// The annotation wire format links a downstream commit to its upstream origin
// and must stay byte-compatible with annotations written by earlier tooling.
const provenanceAnnotationTemplateConstant = "(cherry picked from commit %s/%s@%s)"

var provenanceAnnotationExpression = regexp.MustCompile(`\(cherry picked from commit ([^/@\s]+)/([^/@\s]+)@([0-9a-fA-F]+)\)`)

const (
	annotationOwnerGroupIndexConstant      = 1
	annotationRepositoryGroupIndexConstant = 2
	annotationIdentifierGroupIndexConstant = 3
)

// FormatProvenanceAnnotation renders the annotation for an upstream commit.
func FormatProvenanceAnnotation(upstream RepositoryReference, commitIdentifier string) string {
	return fmt.Sprintf(provenanceAnnotationTemplateConstant, upstream.Owner, upstream.Name, commitIdentifier)
}

// ExtractAnnotatedIdentifiers returns the upstream commit identifiers referenced by
// provenance annotations in the message body that match the upstream org/repo pair.
// Annotations for other repositories are ignored.
func ExtractAnnotatedIdentifiers(messageBody string, upstream RepositoryReference) []string {
	identifiers := []string{}
	for _, annotationMatch := range provenanceAnnotationExpression.FindAllStringSubmatch(messageBody, -1) {
		if annotationMatch[annotationOwnerGroupIndexConstant] != upstream.Owner {
			continue
		}
		if annotationMatch[annotationRepositoryGroupIndexConstant] != upstream.Name {
			continue
		}
		identifiers = append(identifiers, annotationMatch[annotationIdentifierGroupIndexConstant])
	}
	return identifiers
}
