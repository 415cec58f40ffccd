package srcset

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Candidate is one rendition of an image, parsed from a srcset-style
// descriptor or taken from a plain single-URL attribute. Width and Density
// are zero when the descriptor carried no such hint.
type Candidate struct {
	URL     string
	Width   int
	Density float64
	// FromSrcset records whether the candidate came from a responsive
	// descriptor rather than a fallback attribute like src/data-src.
	FromSrcset bool
}

// Parse splits a srcset-style descriptor string into candidates, preserving
// input order. Each comma-separated token is a URL optionally followed by a
// width ("800w") or density ("2x") descriptor. Malformed or missing
// descriptors degrade to a bare URL candidate; Parse never fails.
func Parse(s string) []Candidate {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []Candidate
	for _, part := range strings.Split(s, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		fields := strings.Fields(token)
		c := Candidate{URL: fields[0], FromSrcset: true}
		if len(fields) > 1 {
			desc := strings.ToLower(fields[1])
			switch {
			case strings.HasSuffix(desc, "w"):
				if w, err := strconv.Atoi(desc[:len(desc)-1]); err == nil {
					c.Width = w
				}
			case strings.HasSuffix(desc, "x"):
				if d, err := strconv.ParseFloat(desc[:len(desc)-1], 64); err == nil {
					c.Density = d
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// PreferSrcset narrows a candidate list to the descriptor-borne entries when
// any exist; plain-attribute fallbacks only compete when no srcset candidate
// is present. Within a <picture>, a hintless <source srcset> still outranks
// the <img src> fallback.
func PreferSrcset(candidates []Candidate) []Candidate {
	var fromSrcset []Candidate
	for _, c := range candidates {
		if c.FromSrcset {
			fromSrcset = append(fromSrcset, c)
		}
	}
	if len(fromSrcset) > 0 {
		return fromSrcset
	}
	return candidates
}

// sizeInNameRe matches a WIDTHxHEIGHT pattern embedded in a filename,
// e.g. "1200x800", with 3-5 digits per side and no adjacent digits.
var sizeInNameRe = regexp.MustCompile(`(\d{3,5})[xX](\d{3,5})`)

// scoreURL ranks a URL that carries no descriptor hints: a WxH pattern in
// the name scores width*height, anything else scores by raw string length.
func scoreURL(u string) int {
	for off := 0; off < len(u); {
		m := sizeInNameRe.FindStringSubmatchIndex(u[off:])
		if m == nil {
			break
		}
		start, end := off+m[0], off+m[1]
		// Reject matches butted against other digits, which would be
		// fragments of longer numbers rather than dimensions.
		if (start > 0 && isDigit(u[start-1])) || (end < len(u) && isDigit(u[end])) {
			off = start + 1
			continue
		}
		w, _ := strconv.Atoi(u[off+m[2] : off+m[3]])
		h, _ := strconv.Atoi(u[off+m[4] : off+m[5]])
		return w * h
	}
	return len(u)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// SelectBest picks exactly one candidate and resolves it against base.
// Width hints win over density hints, which win over the filename-size
// heuristic; within each rule the maximum wins and ties keep the earliest
// candidate. An empty list yields "".
func SelectBest(candidates []Candidate, base *url.URL) string {
	if len(candidates) == 0 {
		return ""
	}
	best := -1
	bestWidth := 0
	for i, c := range candidates {
		if c.Width > 0 && c.Width > bestWidth {
			best, bestWidth = i, c.Width
		}
	}
	if best >= 0 {
		return Resolve(candidates[best].URL, base)
	}
	bestDensity := 0.0
	for i, c := range candidates {
		if c.Density > 0 && c.Density > bestDensity {
			best, bestDensity = i, c.Density
		}
	}
	if best >= 0 {
		return Resolve(candidates[best].URL, base)
	}
	bestScore := -1
	for i, c := range candidates {
		if s := scoreURL(c.URL); s > bestScore {
			best, bestScore = i, s
		}
	}
	return Resolve(candidates[best].URL, base)
}

// Resolve turns a possibly-relative URL into an absolute one against base.
// Absolute URLs pass through unchanged; unparseable input is returned as-is.
func Resolve(raw string, base *url.URL) string {
	if base == nil {
		return raw
	}
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
