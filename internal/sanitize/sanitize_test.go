package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bold and entity", input: "[b]Hello[/b] &amp; World", want: "Hello & World"},
		{name: "nested", input: "[i][b]deep[/b][/i] text", want: "deep text"},
		{name: "attributes", input: "[url=https://example.com]link[/url]", want: "link"},
		{name: "list markup", input: "[list][*]one[*]two[/list]", want: "onetwo"},
		{name: "numeric entity", input: "caf&#233; &#x2665;", want: "café ♥"},
		{name: "named entity", input: "I &hearts; manga", want: "I ♥ manga"},
		{name: "unbalanced open", input: "[b]never closed", want: "[b]never closed"},
		{name: "mismatched close", input: "[b]text[/i]", want: "[b]text[/i]"},
		{name: "stray close", input: "text[/b]", want: "text[/b]"},
		{name: "close on next line", input: "[b]line one\nline two[/b]", want: "[b]line one\nline two[/b]"},
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "Just a description.", want: "Just a description."},
		{name: "close on a later line only", input: "[b]one\ntwo[/b] [b]three[/b]", want: "[b]one\ntwo[/b] three"},
		{name: "similar close name", input: "[b]x[/bb][/b]", want: "x[/bb]"},
		{name: "spoiler inside text", input: "Before [spoiler]hidden[/spoiler] after", want: "Before hidden after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"[b]Hello[/b] &amp; World",
		"Vol.2 Ch.5 - Homecoming",
		"[i][u]x[/u][/i] [b]y",
		"Group A & Group B",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), in)
	}
}

func TestTextTerminatesOnAdversarialInput(t *testing.T) {
	in := ""
	for i := 0; i < 200; i++ {
		in += "[a][b]"
	}
	for i := 0; i < 200; i++ {
		in += "[/a]"
	}

	assert.NotPanics(t, func() { Text(in) })
}

func TestTextLongLineOfUnclosedTags(t *testing.T) {
	unclosed := strings.Repeat("[a]", 40000)

	assert.Equal(t, unclosed, Text(unclosed))
	assert.Equal(t, strings.Repeat("[a]", 39999)+"x", Text(unclosed+"x[/a]"))
}
