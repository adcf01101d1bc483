package streetdir

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/LYYYYL/AddressValidator/internal/search"
)

const (
	categorySelector  = "div.main_view_result div.category_row"
	containerSelector = "div.search_list"
	labelSelector     = "div.search_label"
	addressLabel      = "Address"
)

// ParseListings extracts (address, category) pairs from a search results page.
// limit caps the number of pairs; 0 means no cap.
func ParseListings(r io.Reader, limit int) ([]search.CategoryItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	items := []search.CategoryItem{}
	doc.Find(categorySelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		item := search.CategoryItem{Category: afterColon(row)}

		container := row.ParentsFiltered(containerSelector).First()
		container.ChildrenFiltered("div").EachWithBreak(func(_ int, child *goquery.Selection) bool {
			label := child.Find(labelSelector).First()
			if label.Length() > 0 && strings.Contains(label.Text(), addressLabel) {
				item.Address = afterColon(child)
				return false
			}
			return true
		})

		items = append(items, item)
		return limit <= 0 || len(items) < limit
	})

	return items, nil
}

// afterColon returns the element text after the first ':' or the whole text if there is none
func afterColon(s *goquery.Selection) string {
	text := strings.Join(strings.Fields(s.Text()), " ")
	if _, after, found := strings.Cut(text, ":"); found {
		return strings.TrimSpace(after)
	}
	return text
}
