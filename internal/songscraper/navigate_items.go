package songscraper

import (
	"strings"

	"github.com/tidwall/gjson"
)

// itemListPath is the only trusted route from the initial-data root to the
// result items. Everything above the leaf is layout wrapping.
var itemListPath = []string{
	"contents",
	"twoColumnSearchResultsRenderer",
	"primaryContents",
	"sectionListRenderer",
	"contents",
	"0",
	"itemSectionRenderer",
	"contents",
}

// NavigateItems returns the result-item nodes under root, or an empty slice when
// any step of the path is missing or the leaf is not a list.
func NavigateItems(root gjson.Result) []gjson.Result {
	items := dig(root, itemListPath...)
	if !items.IsArray() {
		return []gjson.Result{}
	}
	return items.Array()
}

// dig follows keys from node and returns the value at the end, or an empty
// result as soon as a step is absent. Numeric keys index into arrays.
func dig(node gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if !node.Exists() {
			return gjson.Result{}
		}
		node = node.Get(escapePathKey(key))
	}
	return node
}

const pathSpecialChars = `\.*?|#@!=<>%`

// escapePathKey makes key a literal single gjson path component.
func escapePathKey(key string) string {
	if !strings.ContainsAny(key, pathSpecialChars) {
		return key
	}
	var builder strings.Builder
	for _, r := range key {
		if strings.ContainsRune(pathSpecialChars, r) {
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
