package scrape

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// sniffLen is the prescan window for a meta charset declaration.
const sniffLen = 1024

// ParseDocument decodes body to UTF-8 using the Content-Type or <meta> charset
// and parses it into a goquery document. An undeclared body that is valid
// UTF-8 throughout is taken as UTF-8.
func ParseDocument(body []byte, contentType string) (*goquery.Document, error) {
	peek := body
	if len(peek) > sniffLen {
		peek = peek[:sniffLen]
	}
	enc, name, certain := charset.DetermineEncoding(peek, contentType)
	if !certain && utf8.Valid(body) {
		name = "utf-8"
	}
	if name != "utf-8" {
		decoded, err := enc.NewDecoder().Bytes(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s body: %w", name, err)
		}
		body = decoded
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
