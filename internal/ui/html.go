package ui

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlText renders modal HTML as plain text: block elements break lines and
// list items get a bullet. Script and style bodies are dropped.
func htmlText(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	skip := 0
	pending := false

	last := func() byte {
		if b.Len() == 0 {
			return '\n'
		}
		s := b.String()
		return s[len(s)-1]
	}
	newline := func() {
		s := strings.TrimRight(b.String(), " ")
		b.Reset()
		b.WriteString(s)
		if b.Len() > 0 && last() != '\n' {
			b.WriteByte('\n')
		}
		pending = false
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(collapseBlankLines(b.String()))

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch tag {
			case "script", "style":
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			case "br":
				newline()
			case "p", "h1", "h2", "h3", "h4", "h5", "h6":
				newline()
				if tt == html.EndTagToken {
					b.WriteByte('\n')
				}
			case "div", "ul", "ol", "section", "tr":
				newline()
			case "li":
				newline()
				if tt == html.StartTagToken {
					b.WriteString("• ")
				}
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			t := string(z.Text())
			words := strings.Fields(t)
			if len(words) == 0 {
				pending = pending || t != ""
				continue
			}
			if startsWithSpace(t) {
				pending = true
			}
			for i, w := range words {
				if (i > 0 || pending) && last() != '\n' && last() != ' ' {
					b.WriteByte(' ')
				}
				b.WriteString(w)
			}
			pending = endsWithSpace(t)
		}
	}
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}

// hyperlink wraps label in an OSC 8 terminal hyperlink to url.
func hyperlink(url, label string) string {
	if url == "" {
		return label
	}
	return "\x1b]8;;" + url + "\x1b\\" + label + "\x1b]8;;\x1b\\"
}
