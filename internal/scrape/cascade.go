package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule extracts one trimmed value from a selection, or "" when nothing matches.
type Rule func(s *goquery.Selection) string

// Text reads the text of the first node matching selector under s.
// An empty selector reads s itself.
func Text(selector string) Rule {
	return func(s *goquery.Selection) string {
		return strings.TrimSpace(scope(s, selector).Text())
	}
}

// Attr reads attribute name of the first node matching selector under s.
// An empty selector reads s itself.
func Attr(selector, name string) Rule {
	return func(s *goquery.Selection) string {
		v, _ := scope(s, selector).Attr(name)
		return strings.TrimSpace(v)
	}
}

// OwnAttr reads attribute name of s itself.
func OwnAttr(name string) Rule {
	return Attr("", name)
}

// Transform post-processes the value of rule. fn is not called on "".
func Transform(rule Rule, fn func(string) string) Rule {
	return func(s *goquery.Selection) string {
		v := rule(s)
		if v == "" {
			return ""
		}
		return strings.TrimSpace(fn(v))
	}
}

// First evaluates rules in order and returns the first non-empty value.
// Later rules are not evaluated once one succeeds.
func First(rules ...Rule) Rule {
	return func(s *goquery.Selection) string {
		for _, rule := range rules {
			if v := rule(s); v != "" {
				return v
			}
		}
		return ""
	}
}

// Select returns every node under root matching any of the selectors, in
// document order and without duplicates.
func Select(root *goquery.Selection, selectors ...string) *goquery.Selection {
	return root.Find(strings.Join(selectors, ", "))
}

// LastPathSegment returns the last "/"-separated part of a link.
func LastPathSegment(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// SegmentAfter returns the path segment that follows marker in link, dropping
// any query string. It returns "" when marker is absent.
func SegmentAfter(link, marker string) string {
	_, rest, ok := strings.Cut(link, marker)
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func scope(s *goquery.Selection, selector string) *goquery.Selection {
	if selector == "" {
		return s.First()
	}
	return s.Find(selector).First()
}
