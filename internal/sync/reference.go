package sync

import (
	"fmt"
	"strings"
)

const (
	referenceSegmentSeparatorConstant         = "/"
	referenceExpectedSegmentCountConstant     = 3
	malformedReferenceMessageTemplateConstant = "malformed repository reference %q: expected org/repo/branch"
	repositorySlugTemplateConstant            = "%s/%s"
	referenceTemplateConstant                 = "%s/%s/%s"
)

// RepositoryReference identifies a repository branch as an org/repo/branch triple.
type RepositoryReference struct {
	Owner  string
	Name   string
	Branch string
}

// Slug returns the org/repo portion of the reference.
func (reference RepositoryReference) Slug() string {
	return fmt.Sprintf(repositorySlugTemplateConstant, reference.Owner, reference.Name)
}

// String returns the full org/repo/branch triple.
func (reference RepositoryReference) String() string {
	return fmt.Sprintf(referenceTemplateConstant, reference.Owner, reference.Name, reference.Branch)
}

// ParseRepositoryReference converts an org/repo/branch triple into a structured reference.
func ParseRepositoryReference(rawReference string) (RepositoryReference, error) {
	trimmedReference := strings.TrimSpace(rawReference)
	segments := strings.Split(trimmedReference, referenceSegmentSeparatorConstant)
	if len(segments) != referenceExpectedSegmentCountConstant {
		return RepositoryReference{}, ConfigurationError{Message: fmt.Sprintf(malformedReferenceMessageTemplateConstant, rawReference)}
	}
	for _, segment := range segments {
		if len(strings.TrimSpace(segment)) == 0 {
			return RepositoryReference{}, ConfigurationError{Message: fmt.Sprintf(malformedReferenceMessageTemplateConstant, rawReference)}
		}
	}
	return RepositoryReference{
		Owner:  strings.TrimSpace(segments[0]),
		Name:   strings.TrimSpace(segments[1]),
		Branch: strings.TrimSpace(segments[2]),
	}, nil
}
