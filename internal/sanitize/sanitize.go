// Package sanitize neutralizes markup in user supplied text before it is
// returned to clients.
//
// It is an allow-list XSS filter built on the golang.org/x/net/html tokenizer:
//   - plain text is entity-escaped
//   - tags outside the allow-list are escaped and shown as text
//   - allowed tags keep only allowed attributes, so inline event handlers
//     (onerror, onclick, ...) are always dropped
//   - href/src values with a non-web scheme (javascript:, data:, ...) are dropped
package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Sanitizer turns untrusted text into text that is safe to embed in HTML.
type Sanitizer interface {
	Sanitize(text string) string
}

// Func adapts a plain function to the Sanitizer interface.
type Func func(text string) string

func (f Func) Sanitize(text string) string {
	return f(text)
}

// Policy is an allow-list of tags and, per tag, of attributes.
type Policy struct {
	tags map[string]map[string]bool
}

// urlAttrs hold URLs and get their scheme checked.
var urlAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// NewPolicy returns the default policy used for bookmark fields: basic inline
// formatting, lists, links and images.
func NewPolicy() *Policy {
	p := &Policy{tags: make(map[string]map[string]bool)}

	p.Allow("a", "href", "title", "target")
	p.Allow("img", "src", "alt", "title", "width", "height")
	for _, tag := range []string{
		"b", "i", "u", "em", "strong", "small", "span", "p", "br",
		"code", "pre", "blockquote", "ul", "ol", "li",
	} {
		p.Allow(tag)
	}

	return p
}

// Allow adds tag to the allow-list with the given attributes.
// Calling it again for the same tag adds to its attribute set.
func (p *Policy) Allow(tag string, attrs ...string) *Policy {
	tag = strings.ToLower(tag)
	set, ok := p.tags[tag]
	if !ok {
		set = make(map[string]bool)
		p.tags[tag] = set
	}
	for _, a := range attrs {
		set[strings.ToLower(a)] = true
	}
	return p
}

// Sanitize rewrites text according to the policy.
func (p *Policy) Sanitize(text string) string {
	if text == "" {
		return text
	}

	z := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	b.Grow(len(text))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// At EOF inside an unterminated tag or comment the tokenizer
			// holds the pending bytes in Raw; keep them as escaped text.
			b.WriteString(html.EscapeString(string(z.Raw())))
			return b.String()
		}

		// Raw is only valid until the next call to Next; copy it now.
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			b.WriteString(html.EscapeString(string(z.Text())))

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			allowed, ok := p.tags[tok.Data]
			if !ok {
				b.WriteString(html.EscapeString(raw))
				continue
			}
			p.writeTag(&b, tok, allowed, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			tok := z.Token()
			if _, ok := p.tags[tok.Data]; !ok {
				b.WriteString(html.EscapeString(raw))
				continue
			}
			b.WriteString("</" + tok.Data + ">")

		case html.CommentToken:
			// dropped

		default:
			b.WriteString(html.EscapeString(raw))
		}
	}
}

func (p *Policy) writeTag(b *strings.Builder, tok html.Token, allowed map[string]bool, selfClosing bool) {
	b.WriteString("<")
	b.WriteString(tok.Data)

	for _, attr := range tok.Attr {
		if attr.Namespace != "" || !allowed[attr.Key] {
			continue
		}
		if urlAttrs[attr.Key] && !safeURL(attr.Val) {
			continue
		}
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteString(`"`)
	}

	if selfClosing {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
}

// safeURL allows relative references and absolute URLs with a web scheme.
func safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}
