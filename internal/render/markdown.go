package render

import (
	"html/template"
	"regexp"
	"strings"
)

var boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Markdown renders the small markdown subset used in job descriptions:
// "## " and "### " headings, "- " bullets, **bold** and blank-line
// separated paragraphs. Input is HTML-escaped before any tag is added.
func Markdown(src string) template.HTML {
	var (
		sb     strings.Builder
		inList bool
		para   []string
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.Join(para, "<br>"))
		sb.WriteString("</p>\n")
		para = para[:0]
	}
	closeList := func() {
		if inList {
			sb.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		text := inline(line)

		switch {
		case strings.TrimSpace(line) == "":
			flushPara()
			closeList()
		case strings.HasPrefix(line, "### "):
			flushPara()
			closeList()
			sb.WriteString("<h3>" + inline(line[4:]) + "</h3>\n")
		case strings.HasPrefix(line, "## "):
			flushPara()
			closeList()
			sb.WriteString("<h2>" + inline(line[3:]) + "</h2>\n")
		case strings.HasPrefix(line, "- "):
			flushPara()
			if !inList {
				sb.WriteString("<ul>\n")
				inList = true
			}
			sb.WriteString("<li>" + inline(line[2:]) + "</li>\n")
		default:
			closeList()
			para = append(para, text)
		}
	}
	flushPara()
	closeList()

	return template.HTML(sb.String())
}

func inline(s string) string {
	return boldRe.ReplaceAllString(template.HTMLEscapeString(s), "<strong>$1</strong>")
}

// EmbedURL turns a YouTube watch link into its embeddable form. Other URLs
// are returned unchanged.
func EmbedURL(u string) string {
	return strings.Replace(u, "watch?v=", "embed/", 1)
}
