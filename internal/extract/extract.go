package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/newsgrab/newsgrab/internal/profile"
	"github.com/newsgrab/newsgrab/internal/scope"
	"github.com/newsgrab/newsgrab/internal/srcset"
)

// knownAttrs is the fixed set of attribute names the engine ever reads.
// Anything else on a tag is ignored outright.
var knownAttrs = map[string]bool{
	"class": true, "id": true, "role": true, "style": true,
	"srcset": true, "data-srcset": true,
	"src": true, "data-src": true, "data-original": true, "data-image": true,
}

var (
	// noscriptImgRe finds <img src=...> fallbacks inside decoded noscript text.
	noscriptImgRe = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
	// styleURLRe finds background-image URLs in inline style attributes.
	styleURLRe = regexp.MustCompile(`url\(["']?(https?://[^)"']+)["']?\)`)
)

// Images scans an HTML document in a single streaming pass and returns the
// absolute URLs of the best rendition of every image inside the profile's
// designated region, de-duplicated in first-seen order. Malformed markup is
// never an error; the scan is best effort and simply stops at end of input.
func Images(doc string, pageURL string, p *profile.Profile) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	c := &collector{
		base:    base,
		profile: p,
		tracker: scope.New(p),
		seen:    map[string]struct{}{},
	}
	c.run(doc)
	return c.out
}

// collector holds the per-document scan state. Everything here is created
// fresh per page and discarded afterwards.
type collector struct {
	base    *url.URL
	profile *profile.Profile
	tracker *scope.Tracker

	// pictureCands accumulates candidates inside the currently open
	// <picture>; committed through the selector when it closes.
	pictureCands []srcset.Candidate

	seen map[string]struct{}
	out  []string
}

func (c *collector) run(doc string) {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a low-level read error; either way the scan is done.
			return
		case html.StartTagToken:
			tok := z.Token()
			c.startTag(tok.Data, attrsOf(tok), false)
		case html.SelfClosingTagToken:
			tok := z.Token()
			c.startTag(tok.Data, attrsOf(tok), true)
		case html.EndTagToken:
			tok := z.Token()
			c.endTag(tok.Data)
		case html.TextToken:
			if c.tracker.InScope() && c.tracker.InNoscript() {
				c.scanNoscript(string(z.Text()))
			}
		}
	}
}

func (c *collector) startTag(tag string, at map[string]string, selfClosing bool) {
	switch tag {
	case "div", "main", "article", "figure", "noscript":
		if !selfClosing {
			c.tracker.Open(tag, scope.Attrs{Class: at["class"], ID: at["id"], Role: at["role"]})
		}
	case "picture":
		if !selfClosing {
			c.tracker.Open(tag, scope.Attrs{})
			if c.tracker.InPicture() {
				c.pictureCands = c.pictureCands[:0]
			}
		}
	case "source", "img":
		if !c.tracker.InScope() {
			break
		}
		if c.tracker.InPicture() {
			c.pictureCands = append(c.pictureCands, c.gather(at)...)
			break
		}
		// A <source> stranded outside any <picture> still names a real
		// rendition; treat it like a lone image.
		c.consider(srcset.SelectBest(c.gather(at), c.base))
	}
	if c.tracker.InScope() {
		if style := at["style"]; style != "" {
			if m := styleURLRe.FindStringSubmatch(style); m != nil {
				c.consider(srcset.Resolve(m[1], c.base))
			}
		}
	}
}

func (c *collector) endTag(tag string) {
	if tag == "picture" && c.tracker.InPicture() {
		c.consider(srcset.SelectBest(srcset.PreferSrcset(c.pictureCands), c.base))
		c.pictureCands = nil
	}
	c.tracker.Close(tag)
}

// gather collects the candidates one image-bearing tag contributes: parsed
// responsive descriptors first, then plain fallback attributes in the
// profile's priority order.
func (c *collector) gather(at map[string]string) []srcset.Candidate {
	var cands []srcset.Candidate
	for _, key := range c.profile.SrcsetAttrs {
		if v := at[key]; v != "" {
			cands = append(cands, srcset.Parse(v)...)
		}
	}
	for _, key := range c.profile.FallbackAttrs {
		if v := at[key]; v != "" {
			cands = append(cands, srcset.Candidate{URL: v})
		}
	}
	return cands
}

// scanNoscript pattern-matches <img> fallbacks out of raw noscript text.
// These are single URLs, so they skip the selector entirely.
func (c *collector) scanNoscript(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	text := html.UnescapeString(raw)
	for _, m := range noscriptImgRe.FindAllStringSubmatch(text, -1) {
		c.consider(srcset.Resolve(m[1], c.base))
	}
}

// consider applies the site policy to one resolved URL and appends it to the
// result when it survives. Order of checks: scheme, allowed host, rewrite,
// de-duplication on the final string.
func (c *collector) consider(resolved string) {
	if resolved == "" {
		return
	}
	if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
		return
	}
	u, err := url.Parse(resolved)
	if err != nil || !c.profile.MatchesHost(u) {
		return
	}
	if c.profile.Rewrite != nil {
		resolved = c.profile.Rewrite(resolved)
	}
	if _, dup := c.seen[resolved]; dup {
		return
	}
	c.seen[resolved] = struct{}{}
	c.out = append(c.out, resolved)
}

// attrsOf flattens a token's attributes into a lookup of the attribute names
// the engine knows about. Later duplicates of the same name are dropped, as
// browsers do.
func attrsOf(tok html.Token) map[string]string {
	at := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		key := strings.ToLower(a.Key)
		if !knownAttrs[key] {
			continue
		}
		if _, ok := at[key]; !ok {
			at[key] = a.Val
		}
	}
	return at
}
