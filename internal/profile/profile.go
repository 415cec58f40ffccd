package profile

import (
	"fmt"
	"net/url"
	"strings"
)

// NumberingPolicy controls when the global filename counter advances.
type NumberingPolicy string

const (
	// NumberOnAttempt takes the next number before the download starts and
	// keeps it even when the download fails.
	NumberOnAttempt NumberingPolicy = "attempt"
	// NumberOnSuccess consumes a number only when the save succeeds, so
	// filenames never gap.
	NumberOnSuccess NumberingPolicy = "success"
)

// Profile parameterizes the shared extraction engine for one site. All
// site-specific behavior lives here as data so the scanner and selector stay
// free of per-site branching.
type Profile struct {
	// Name identifies the profile in flags and logs.
	Name string
	// FilePrefix is the stem of saved image filenames.
	FilePrefix string

	// WrapClasses are div class tokens that open an in-scope region on
	// their own (e.g. the Daily Mail "image-wrap" container).
	WrapClasses []string
	// LightboxIDs and LightboxRoles mark a div as a lightbox dialog region.
	LightboxIDs   []string
	LightboxRoles []string
	// ArticleFigures gates collection on <main><article> ... <figure>
	// nesting (the Guardian layout) instead of a wrapper class.
	ArticleFigures bool

	// SrcsetAttrs are responsive descriptor attributes, in priority order.
	SrcsetAttrs []string
	// FallbackAttrs are single-URL attributes tried in order when no
	// descriptor is present.
	FallbackAttrs []string

	// AllowedHostSuffix restricts emitted URLs to hosts matching or ending
	// with this suffix. Empty means any host.
	AllowedHostSuffix string
	// URLFilter keeps only input page URLs containing this substring.
	URLFilter string

	// Rewrite optionally transforms an emitted URL, e.g. to request a
	// larger rendition. Nil means identity.
	Rewrite func(string) string

	// Numbering is the profile's default filename numbering policy.
	Numbering NumberingPolicy
}

// MatchesHost reports whether the URL's host is acceptable for this profile.
func (p *Profile) MatchesHost(u *url.URL) bool {
	if p.AllowedHostSuffix == "" {
		return true
	}
	host := strings.ToLower(u.Hostname())
	return host == p.AllowedHostSuffix || strings.HasSuffix(host, p.AllowedHostSuffix)
}

// guardianUpgradeWidth is the rendition width requested from the image CDN
// when a URL is unsigned and safe to rewrite.
const guardianUpgradeWidth = 2000

// upgradeGuardianURL asks the Guardian image CDN for a larger rendition.
// Signed URLs (an "s=" query parameter) must pass through byte-identical:
// touching the query invalidates the signature.
func upgradeGuardianURL(raw string) string {
	if !strings.Contains(raw, "i.guim.co.uk") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if strings.Contains(strings.ToLower(u.RawQuery), "s=") {
		return raw
	}
	q := u.Query()
	q.Set("width", fmt.Sprint(guardianUpgradeWidth))
	q.Set("dpr", "2")
	u.RawQuery = q.Encode()
	return u.String()
}

// DailyMail scrapes images nested under <div class="image-wrap">, keeping
// the largest srcset rendition. It saves under the dailymail_ prefix and
// numbers files only on successful saves.
func DailyMail() *Profile {
	return &Profile{
		Name:          "dailymail",
		FilePrefix:    "dailymail",
		WrapClasses:   []string{"image-wrap"},
		SrcsetAttrs:   []string{"srcset", "data-srcset"},
		FallbackAttrs: []string{"data-src", "data-original", "data-image", "src"},
		Numbering:     NumberOnSuccess,
	}
}

// Guardian scrapes figures inside <main><article> and the gu-lightbox
// dialog, keeps only i.guim.co.uk URLs, and upgrades unsigned CDN URLs to a
// wider rendition. Files are numbered per attempted download.
func Guardian() *Profile {
	return &Profile{
		Name:              "guardian",
		FilePrefix:        "guardian",
		LightboxIDs:       []string{"gu-lightbox"},
		LightboxRoles:     []string{"dialog"},
		ArticleFigures:    true,
		SrcsetAttrs:       []string{"srcset", "data-srcset"},
		FallbackAttrs:     []string{"src", "data-src"},
		AllowedHostSuffix: "i.guim.co.uk",
		URLFilter:         "theguardian.com",
		Rewrite:           upgradeGuardianURL,
		Numbering:         NumberOnAttempt,
	}
}

// ByName resolves a profile from its flag value.
func ByName(name string) (*Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dailymail":
		return DailyMail(), nil
	case "guardian":
		return Guardian(), nil
	default:
		return nil, fmt.Errorf("unknown site profile: %q", name)
	}
}
