package job

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/honeycarbs/talentry/internal/domain"
)

// DefaultQueryTerm is sent to the provider when no free text is given
const DefaultQueryTerm = "jobs"

// ComposeProviderQuery builds the provider-facing text query
func ComposeProviderQuery(freeText, location string) string {
	term := strings.TrimSpace(freeText)
	if term == "" || domain.IsMatchAll(term) {
		term = DefaultQueryTerm
	}
	if location = strings.TrimSpace(location); location != "" {
		term += " in " + location
	}
	return term
}

// ComposeCacheKey encodes every parameter that shapes a provider response.
// Fields are escaped so no value can forge a delimiter.
func ComposeCacheKey(freeText, location string, page, pageCount int, country string) string {
	var b strings.Builder
	b.WriteString("text:")
	b.WriteString(url.QueryEscape(freeText))
	b.WriteString("|location:")
	b.WriteString(url.QueryEscape(location))
	b.WriteString("|page:")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("|num_pages:")
	b.WriteString(strconv.Itoa(pageCount))
	b.WriteString("|country:")
	b.WriteString(url.QueryEscape(country))
	return b.String()
}
