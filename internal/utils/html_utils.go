package utils

import (
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentImageClass is the bootstrap class post card images share
const contentImageClass = "img-fluid"

// decorateContent post-processes sanitized post or comment HTML: inline
// images load lazily without a referrer and headings are demoted below the
// page's own h1/h2.
func decorateContent(fragment string) template.HTML {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return template.HTML(fragment)
	}
	body := doc.Find("body")

	body.Find("img").
		SetAttr("loading", "lazy").
		SetAttr("referrerpolicy", "no-referrer").
		AddClass(contentImageClass)

	body.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		inner, _ := s.Html()
		s.ReplaceWithHtml("<h3>" + inner + "</h3>")
	})

	out, err := body.Html()
	if err != nil {
		return template.HTML(fragment)
	}
	return template.HTML(out)
}
