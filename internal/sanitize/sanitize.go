package sanitize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var (
	openTag  = regexp.MustCompile(`\[(\w+)[^\]]*\]`)
	closeTag = regexp.MustCompile(`\[/(\w+)\]`)

	listMarkup = strings.NewReplacer("[list]", "", "[/list]", "", "[*]", "")
)

// Text removes bbcode markup and decodes html entities, e.g. "&hearts;" becomes "♥"
func Text(s string) string {
	s = listMarkup.Replace(s)

	// every pass removes at least one tag pair, so len(s) passes is an upper bound
	for i := len(s); i > 0; i-- {
		stripped, changed := stripTags(s)
		if !changed {
			break
		}
		s = stripped
	}

	return html.UnescapeString(s)
}

// stripTags replaces every [tag ...]inner[/tag] pair with its inner content,
// scanning left to right. The inner content does not span lines.
func stripTags(s string) (string, bool) {
	closings := closingIndex(s)
	if len(closings) == 0 {
		return s, false
	}
	newlines := newlineIndex(s)

	var b strings.Builder
	changed := false
	cursor := 0

	for cursor < len(s) {
		loc := openTag.FindStringSubmatchIndex(s[cursor:])
		if loc == nil {
			break
		}

		start, end := cursor+loc[0], cursor+loc[1]
		name := s[cursor+loc[2] : cursor+loc[3]]

		lineEnd := len(s)
		if n := sort.SearchInts(newlines, end); n < len(newlines) {
			lineEnd = newlines[n]
		}

		positions := closings[name]
		p := -1
		if n := sort.SearchInts(positions, end); n < len(positions) && positions[n] < lineEnd {
			p = positions[n]
		}

		if p < 0 {
			// no matching close, keep the bracket and move past it
			b.WriteString(s[cursor : start+1])
			cursor = start + 1
			continue
		}

		b.WriteString(s[cursor:start])
		b.WriteString(s[end:p])
		cursor = p + len(name) + 3
		changed = true
	}

	b.WriteString(s[cursor:])
	return b.String(), changed
}

// closingIndex maps every tag name to the ascending offsets of its [/name].
func closingIndex(s string) map[string][]int {
	idx := make(map[string][]int)
	for _, loc := range closeTag.FindAllStringSubmatchIndex(s, -1) {
		name := s[loc[2]:loc[3]]
		idx[name] = append(idx[name], loc[0])
	}
	return idx
}

func newlineIndex(s string) []int {
	var idx []int
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}
