package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spigell/hire-assessor/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func profilePage(name, bio string, repos int) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"vcard\">")
	if name != "" {
		fmt.Fprintf(&b, "<h1><span class=\"p-name vcard-fullname\">\n  %s\n</span></h1>", name)
	}
	if bio != "" {
		fmt.Fprintf(&b, "<div class=\"p-note user-profile-bio\"><div>  %s  </div></div>", bio)
	}
	b.WriteString("</div><ol>")
	for i := 1; i <= repos; i++ {
		fmt.Fprintf(&b, "<li><a data-hovercard-type=\"repository\" href=\"/octo/repo-%d\">\n  <span class=\"repo\">repo-%d</span>\n</a></li>", i, i)
	}
	b.WriteString("</ol></body></html>")
	return b.String()
}

func TestParseExtractsFields(t *testing.T) {
	page := profilePage("The Octocat", "Ships code", 2)

	bundle, err := Parse([]byte(page), "https://github.com/octo", GitHubSchema)
	require.NoError(t, err)

	assert.Equal(t, "The Octocat", bundle.Name)
	assert.Equal(t, "Ships code", bundle.Bio)
	assert.Equal(t, []Repository{
		{Name: "repo-1", URL: "https://github.com/octo/repo-1"},
		{Name: "repo-2", URL: "https://github.com/octo/repo-2"},
	}, bundle.Repositories)
}

func TestParseTruncatesRepositoriesInDocumentOrder(t *testing.T) {
	bundle, err := Parse([]byte(profilePage("n", "b", 7)), "https://github.com/octo", GitHubSchema)
	require.NoError(t, err)

	require.Len(t, bundle.Repositories, MaxRepositories)
	assert.Equal(t, []string{"repo-1", "repo-2", "repo-3", "repo-4", "repo-5"}, bundle.RepositoryNames())
}

func TestParseMissingFieldsAreEmpty(t *testing.T) {
	bundle, err := Parse([]byte(profilePage("", "", 0)), "https://github.com/octo", GitHubSchema)
	require.NoError(t, err)

	assert.Empty(t, bundle.Name)
	assert.Empty(t, bundle.Bio)
	assert.NotNil(t, bundle.Repositories)
	assert.Empty(t, bundle.Repositories)
}

func TestParseUsesFirstMatch(t *testing.T) {
	page := `<span class="p-name">First</span><span class="p-name">Second</span>
<a data-hovercard-type="user" href="/someone">not a repo</a>
<a data-hovercard-type="repository" href="/octo/raft">raft</a>`

	bundle, err := Parse([]byte(page), "https://github.com/octo?tab=repositories", GitHubSchema)
	require.NoError(t, err)

	assert.Equal(t, "First", bundle.Name)
	assert.Equal(t, []Repository{{Name: "raft", URL: "https://github.com/octo/raft"}}, bundle.Repositories)
}

func TestParseHreflessAnchorsKeepTheirSlot(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 7; i++ {
		if i == 2 {
			fmt.Fprintf(&b, `<a data-hovercard-type="repository">r%d</a>`, i)
			continue
		}
		fmt.Fprintf(&b, `<a data-hovercard-type="repository" href="/octo/r%d">r%d</a>`, i, i)
	}

	bundle, err := Parse([]byte(b.String()), "https://github.com/octo", GitHubSchema)
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, bundle.RepositoryNames())
	assert.Empty(t, bundle.Repositories[1].URL)
	assert.Equal(t, "https://github.com/octo/r3", bundle.Repositories[2].URL)
}

func TestParseKeepsLinksOnPageOrigin(t *testing.T) {
	page := `<a data-hovercard-type="repository" href="//evil.example/x">protocol relative</a>
<a data-hovercard-type="repository" href="https://gitlab.com/x/y?tab=code">absolute</a>
<a data-hovercard-type="repository" href="repo">bare</a>`

	bundle, err := Parse([]byte(page), "https://github.com/octo", GitHubSchema)
	require.NoError(t, err)

	assert.Equal(t, []Repository{
		{Name: "protocol relative", URL: "https://github.com/x"},
		{Name: "absolute", URL: "https://github.com/x/y?tab=code"},
		{Name: "bare", URL: "https://github.com/repo"},
	}, bundle.Repositories)
}

func TestParseCustomSchema(t *testing.T) {
	schema := Schema{
		{Field: "name", Selector: "h1.title", Kind: KindText},
		{Field: "repositories", Selector: "a.project", Kind: KindLink, Limit: 1},
	}
	page := `<h1 class="title"> Someone </h1><a class="project" href="p/one">One</a><a class="project" href="p/two">Two</a>`

	bundle, err := Parse([]byte(page), "http://profiles.local:8080/u/someone", schema)
	require.NoError(t, err)

	assert.Equal(t, "Someone", bundle.Name)
	assert.Equal(t, []Repository{{Name: "One", URL: "http://profiles.local:8080/p/one"}}, bundle.Repositories)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse([]byte("<html></html>"), "https://github.com/octo", Schema{{Field: "x", Selector: "p", Kind: "regex"}})
	require.Error(t, err)
}

func TestScrapeResolvesAgainstPageOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(profilePage("Octo", "", 3)))
	}))
	defer server.Close()

	scraper := NewScraper(fetch.New(zap.NewNop(), fetch.Options{}), nil, zap.NewNop())

	out := scraper.Scrape(context.Background(), server.URL+"/octo")
	require.NoError(t, out.Err)
	require.Len(t, out.Value.Repositories, 3)
	assert.Equal(t, server.URL+"/octo/repo-1", out.Value.Repositories[0].URL)
	assert.Empty(t, out.Value.Bio)
}

type failingFetcher struct{}

func (failingFetcher) GetHTML(context.Context, string) ([]byte, error) {
	return nil, &fetch.Error{URL: "https://github.com/ghost", StatusCode: http.StatusNotFound, Message: "bad status: 404 Not Found"}
}

func TestScrapeFailureReturnsEmptyBundleAndError(t *testing.T) {
	out := NewScraper(failingFetcher{}, nil, nil).Scrape(context.Background(), "https://github.com/ghost")

	require.Error(t, out.Err)
	var fetchErr *fetch.Error
	assert.True(t, errors.As(out.Err, &fetchErr))
	require.NotNil(t, out.Value)
	assert.Empty(t, out.Value.Name)
	assert.Empty(t, out.Value.Repositories)
}
