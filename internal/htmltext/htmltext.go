package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strip returns the visible text of an HTML fragment with whitespace
// collapsed. Mastodon status content and feed summaries arrive as HTML.
func Strip(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
