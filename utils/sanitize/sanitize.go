package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// dropTags are elements whose entire subtree is discarded.
var dropTags = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// StripHTML reduces untrusted HTML to its text content. Script and
// style subtrees are discarded entirely; all other markup is unwrapped.
// Invalid markup degrades gracefully because the tokenizer never fails,
// it just yields text.
func StripHTML(input string) string {
	if input == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		// The html parser recovers from almost anything; if it does
		// give up, fall back to the raw string with tags crudely cut.
		return crudeStrip(input)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && dropTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}

func crudeStrip(input string) string {
	var b strings.Builder
	inTag := false
	for _, r := range input {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
