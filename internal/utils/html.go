package utils

import (
	"strings"

	"golang.org/x/net/html"
)

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"svg":      true,
	"template": true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "section": true, "article": true, "header": true, "footer": true,
}

// HTMLToText returns the visible text of an HTML fragment or document,
// one block element per line. Plain text passes through with whitespace
// normalized.
func HTMLToText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))

	var (
		lines   []string
		current strings.Builder
		skip    int
	)

	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			lines = append(lines, text)
		}
		current.Reset()
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			tag := token.Data
			if skippedElements[tag] {
				if token.Type == html.StartTagToken {
					skip++
				}
				continue
			}
			if blockElements[tag] {
				flush()
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if skippedElements[tag] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if blockElements[tag] {
				flush()
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			current.Write(tokenizer.Text())
			current.WriteString(" ")
		}
	}
}
