// Package markup turns the HTML bodies Journey stores into Markdown for Day One.
package markup

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// Converter converts entry text into the lightweight markup Day One expects.
type Converter interface {
	Convert(text string) (string, error)
}

// HTMLConverter converts text that contains HTML elements to Markdown and
// leaves plain text untouched.
type HTMLConverter struct {
	converter *md.Converter
}

func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{converter: md.NewConverter("", true, nil)}
}

func (c *HTMLConverter) Convert(text string) (string, error) {
	isHTML, err := ContainsMarkup(text)
	if err != nil {
		return "", err
	}
	if !isHTML {
		return text, nil
	}

	converted, err := c.converter.ConvertString(text)
	if err != nil {
		return "", errors.Wrap(err, "converting HTML to markdown")
	}
	return converted, nil
}

// documentTag matches an explicit html, head or body tag. The parser
// synthesizes these elements for any input, so they are only markup when
// the text spells them out.
var documentTag = regexp.MustCompile(`(?i)</?(html|head|body)(\s[^>]*)?/?>`)

// ContainsMarkup reports whether text holds at least one HTML element.
func ContainsMarkup(text string) (bool, error) {
	if !strings.Contains(text, "<") {
		return false, nil
	}
	if documentTag.MatchString(text) {
		return true, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return false, errors.Wrap(err, "parsing entry text")
	}

	return doc.Find("head, body").Children().Length() > 0, nil
}
