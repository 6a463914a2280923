// Package textclean sanitizes user supplied text before it is stored.
package textclean

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner strips markup that should never reach a browser from job
// descriptions. Basic formatting and http(s)/mailto links survive.
type Cleaner struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func New() *Cleaner {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "div", "span")
	policy.AllowElements("strong", "b", "em", "i", "u")
	policy.AllowElements("ul", "ol", "li")
	policy.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")

	policy.AllowAttrs("href").OnElements("a")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")
	policy.RequireNoFollowOnLinks(true)

	return &Cleaner{policy: policy, strict: bluemonday.StrictPolicy()}
}

// Description keeps formatting and trims surrounding whitespace.
func (c *Cleaner) Description(html string) string {
	return strings.TrimSpace(c.policy.Sanitize(html))
}

// Text removes all markup and returns plain, unescaped text with collapsed
// whitespace. The result must be rendered as text, never as HTML.
func (c *Cleaner) Text(s string) string {
	text := html.UnescapeString(c.strict.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}
