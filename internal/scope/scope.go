package scope

import (
	"strings"

	"github.com/newsgrab/newsgrab/internal/profile"
)

// divState is the scope carried by one open <div>. Flags are inherited from
// the enclosing div so that everything nested under a matching container
// stays in scope.
type divState struct {
	wrap     bool
	lightbox bool
}

// Tracker follows container nesting across a linear start/end tag scan and
// answers whether the current position is inside an image-bearing region.
// It never errors on malformed markup: unmatched end tags are ignored and
// unclosed containers are simply abandoned at end of input.
type Tracker struct {
	p *profile.Profile

	divs     []divState
	main     int
	article  int
	figure   int
	picture  int
	noscript int
}

// New returns a tracker with all counters at zero.
func New(p *profile.Profile) *Tracker {
	return &Tracker{p: p}
}

// Attrs is the fixed set of attributes the tracker inspects on a start tag.
// Unknown attributes are never stored.
type Attrs struct {
	Class string
	ID    string
	Role  string
}

// Open records a start tag. Void elements such as <img> and <source> must
// not be passed here; they carry no region state of their own.
func (t *Tracker) Open(tag string, a Attrs) {
	switch tag {
	case "div":
		s := divState{}
		if len(t.divs) > 0 {
			s = t.divs[len(t.divs)-1]
		}
		if t.matchWrap(a.Class) {
			s.wrap = true
		}
		if t.matchLightbox(a) {
			s.lightbox = true
		}
		t.divs = append(t.divs, s)
	case "main":
		t.main++
	case "article":
		if t.main > 0 {
			t.article++
		}
	case "figure":
		if t.article > 0 || t.InLightbox() {
			t.figure++
		}
	case "picture":
		if t.InScope() {
			t.picture++
		}
	case "noscript":
		if t.InScope() {
			t.noscript++
		}
	}
}

// Close records an end tag. Closing a tag that was never opened is a no-op.
func (t *Tracker) Close(tag string) {
	switch tag {
	case "div":
		if len(t.divs) > 0 {
			t.divs = t.divs[:len(t.divs)-1]
		}
	case "main":
		if t.main > 0 {
			t.main--
		}
	case "article":
		if t.article > 0 {
			t.article--
		}
	case "figure":
		if t.figure > 0 {
			t.figure--
		}
	case "picture":
		if t.picture > 0 {
			t.picture--
		}
	case "noscript":
		if t.noscript > 0 {
			t.noscript--
		}
	}
}

// InScope reports whether an image found at the current position belongs to
// the profile's designated region.
func (t *Tracker) InScope() bool {
	if t.p.ArticleFigures {
		return t.figure > 0 || t.InLightbox()
	}
	return len(t.divs) > 0 && t.divs[len(t.divs)-1].wrap
}

// InLightbox reports whether the current position is inside a lightbox div.
func (t *Tracker) InLightbox() bool {
	return len(t.divs) > 0 && t.divs[len(t.divs)-1].lightbox
}

// InPicture reports whether a <picture> element is currently open in scope.
func (t *Tracker) InPicture() bool { return t.picture > 0 }

// InNoscript reports whether a <noscript> element is currently open in scope.
func (t *Tracker) InNoscript() bool { return t.noscript > 0 }

func (t *Tracker) matchWrap(class string) bool {
	if len(t.p.WrapClasses) == 0 || class == "" {
		return false
	}
	for _, token := range strings.Fields(class) {
		for _, want := range t.p.WrapClasses {
			if token == want {
				return true
			}
		}
	}
	return false
}

func (t *Tracker) matchLightbox(a Attrs) bool {
	for _, id := range t.p.LightboxIDs {
		if a.ID == id {
			return true
		}
	}
	for _, role := range t.p.LightboxRoles {
		if a.Role == role {
			return true
		}
	}
	return false
}
