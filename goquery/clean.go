package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// chrome matches theme decoration that carries no content.
const chrome = "svg, a.headerlink, .twemoji, .tabbed-labels"

// clean strips theme chrome from doc in place.
func clean(doc *goquery.Document) {
	doc.Find(chrome).Remove()

	// Cross-reference placeholders left by autorefs keep their text.
	doc.Find("autoref").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: s.Text()})
	})

	// Line-numbered code tables collapse to a plain code block.
	doc.Find("table.highlighttable").Each(func(_ int, s *goquery.Selection) {
		code := s.Find("td.code pre").First()
		if code.Length() == 0 {
			code = s.Find("td.code").First()
		}
		if code.Length() == 0 {
			code = s
		}
		s.ReplaceWithNodes(codeBlock(code.Text(), language(s)))
	})
}

// language returns the language class of a highlight wrapper, if any.
func language(s *goquery.Selection) string {
	for p := s.Parent(); p.Length() > 0; p = p.Parent() {
		class, _ := p.Attr("class")
		for _, c := range strings.Fields(class) {
			if strings.HasPrefix(c, "language-") {
				return c
			}
		}
		if p.Is(".highlight") {
			break
		}
	}
	return ""
}

func codeBlock(text, class string) *html.Node {
	code := &html.Node{Type: html.ElementNode, Data: "code", DataAtom: atom.Code}
	if class != "" {
		code.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	code.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	pre := &html.Node{Type: html.ElementNode, Data: "pre", DataAtom: atom.Pre}
	pre.AppendChild(code)
	return pre
}
