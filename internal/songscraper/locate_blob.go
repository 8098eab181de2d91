package songscraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// initialDataMarker names the script global the platform hydrates its page from.
const initialDataMarker = "ytInitialData"

// LocateInitialData finds the first inline script that assigns the initial-data
// object and returns the object's JSON text. The end of the object is found by
// brace matching, so whatever script follows the assignment is ignored.
// It reports false when no script carries a complete assignment.
func LocateInitialData(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var blob string
	found := false
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, initialDataMarker) {
			return true
		}
		// A script may only read the global; keep looking for the assignment.
		if candidate, ok := extractAssignedObject(text); ok {
			blob = candidate
			found = true
			return false
		}
		return true
	})

	return blob, found
}

// extractAssignedObject returns the object literal assigned to the marker in
// script, trying each occurrence of the marker in order.
func extractAssignedObject(script string) (string, bool) {
	offset := 0
	for {
		index := strings.Index(script[offset:], initialDataMarker)
		if index < 0 {
			return "", false
		}
		afterMarker := offset + index + len(initialDataMarker)

		if start, ok := assignmentStart(script, afterMarker); ok {
			if end := matchingBrace(script, start); end >= 0 {
				return script[start : end+1], true
			}
		}
		offset = afterMarker
	}
}

// assignmentStart accepts `ytInitialData = {` and `window["ytInitialData"] = {`
// and returns the index of the opening brace.
func assignmentStart(script string, pos int) (int, bool) {
	i := skipAny(script, pos, "\"'] \t\r\n")
	if i >= len(script) || script[i] != '=' {
		return 0, false
	}
	i = skipAny(script, i+1, " \t\r\n")
	if i >= len(script) || script[i] != '{' {
		return 0, false
	}
	return i, true
}

func skipAny(s string, i int, chars string) int {
	for i < len(s) && strings.IndexByte(chars, s[i]) >= 0 {
		i++
	}
	return i
}

// matchingBrace returns the index of the brace closing the object that opens at
// start, or -1 if the object never closes. Braces inside JSON strings are ignored.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
