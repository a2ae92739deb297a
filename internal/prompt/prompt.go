// Package prompt renders the assessment request sent to the AI provider.
package prompt

import (
	_ "embed"
	"strings"

	"github.com/spigell/hire-assessor/internal/profile"
)

//go:embed prompt.md
var template string

const noneValue = "none"

// Input is everything the assessment request is built from.
type Input struct {
	Resume         string
	Profile        *profile.Bundle
	JobDescription string
	CompanyInfo    string
}

// Assemble renders in into the fixed template. Placeholders are replaced in a
// single pass, so text that itself contains a placeholder is left alone.
// Nothing is truncated.
func Assemble(in Input) string {
	bundle := in.Profile
	if bundle == nil {
		bundle = profile.Empty()
	}

	replacer := strings.NewReplacer(
		"{{RESUME}}", in.Resume,
		"{{PROFILE_NAME}}", bundle.Name,
		"{{PROFILE_BIO}}", bundle.Bio,
		"{{REPOSITORIES}}", repositoryList(bundle),
		"{{JOB_DESCRIPTION}}", in.JobDescription,
		"{{COMPANY_INFO}}", in.CompanyInfo,
	)

	return replacer.Replace(template)
}

func repositoryList(b *profile.Bundle) string {
	names := b.RepositoryNames()
	if len(names) == 0 {
		return noneValue
	}
	return strings.Join(names, ", ")
}
