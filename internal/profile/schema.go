package profile

// Kind selects how matched elements are turned into values.
type Kind string

const (
	// KindText yields the trimmed text of the first match, or "".
	KindText Kind = "text"
	// KindLink yields {name, url} entries for up to Limit matches.
	KindLink Kind = "link"
)

const MaxRepositories = 5

// Rule binds a bundle field to a CSS selector.
type Rule struct {
	Field    string
	Selector string
	Kind     Kind
	Limit    int
}

// Schema is the declarative field table a page is scraped with.
type Schema []Rule

// GitHubSchema matches the public GitHub user page. The selectors follow the
// site's markup, so a redesign leaves fields empty instead of failing.
var GitHubSchema = Schema{
	{Field: "name", Selector: "span.p-name", Kind: KindText},
	{Field: "bio", Selector: "div.p-note", Kind: KindText},
	{Field: "repositories", Selector: `a[data-hovercard-type="repository"]`, Kind: KindLink, Limit: MaxRepositories},
}
