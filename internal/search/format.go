package search

import (
	"fmt"
	"strings"
)

// NoResultsText is returned for an empty result set.
const NoResultsText = "No results found"

// FormatResults renders a result set as plain text: a count header followed
// by one Title/URL/Description block per item, blocks separated by a blank line.
func FormatResults(rs *ResultSet) string {
	if rs.Empty() {
		return NoResultsText
	}

	blocks := make([]string, 0, len(rs.Items))
	for _, item := range rs.Items {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nURL: %s\nDescription: %s", item.Title, item.URL, item.Snippet))
	}

	return fmt.Sprintf("Found %d results:\n\n", len(rs.Items)) + strings.Join(blocks, "\n\n")
}

// FormatError renders an error the way the tool reports it.
func FormatError(err error) string {
	return "Error: " + err.Error()
}
