package srcset

import (
	"net/url"
	"testing"
)

func mustBase(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}
	return u
}

func TestParse_WidthHints(t *testing.T) {
	got := Parse("a.jpg 200w, b.jpg 800w")
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].URL != "a.jpg" || got[0].Width != 200 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].URL != "b.jpg" || got[1].Width != 800 {
		t.Fatalf("unexpected second candidate: %+v", got[1])
	}
}

func TestParse_DensityHint(t *testing.T) {
	got := Parse("a.jpg 1x, b.jpg 2x")
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Density != 1 || got[1].Density != 2 {
		t.Fatalf("expected densities 1 and 2, got %+v", got)
	}
}

func TestParse_MalformedDescriptorIsBareURL(t *testing.T) {
	got := Parse("a.jpg huge, b.jpg 9000q")
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Width != 0 || c.Density != 0 {
			t.Fatalf("malformed descriptor should carry no hints: %+v", c)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if got := Parse(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := Parse("   \t "); got != nil {
		t.Fatalf("expected nil for whitespace input, got %v", got)
	}
}

func TestSelectBest_MaxWidthWins(t *testing.T) {
	base := mustBase(t, "https://example.com/article/")
	cands := Parse("a.jpg 200w, b.jpg 800w, c.jpg 400w")
	got := SelectBest(cands, base)
	if got != "https://example.com/article/b.jpg" {
		t.Fatalf("expected 800w candidate resolved against base, got %q", got)
	}
}

func TestSelectBest_WidthBeatsDensity(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	cands := []Candidate{
		{URL: "dense.jpg", Density: 3},
		{URL: "wide.jpg", Width: 100},
	}
	if got := SelectBest(cands, base); got != "https://example.com/wide.jpg" {
		t.Fatalf("width hint should outrank density, got %q", got)
	}
}

func TestSelectBest_DensityFallback(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	cands := Parse("a.jpg 1x, b.jpg 2.5x, c.jpg 2x")
	if got := SelectBest(cands, base); got != "https://example.com/b.jpg" {
		t.Fatalf("expected max density candidate, got %q", got)
	}
}

func TestSelectBest_FilenameSizeHeuristic(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	cands := []Candidate{
		{URL: "img-300x200.jpg"},
		{URL: "img-1200x800.jpg"},
	}
	if got := SelectBest(cands, base); got != "https://example.com/img-1200x800.jpg" {
		t.Fatalf("expected larger filename dimensions to win, got %q", got)
	}
}

func TestSelectBest_LengthHeuristicWhenNoDimensions(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	cands := []Candidate{
		{URL: "short.jpg"},
		{URL: "much-longer-url-variant.jpg"},
	}
	if got := SelectBest(cands, base); got != "https://example.com/much-longer-url-variant.jpg" {
		t.Fatalf("expected longer URL to win, got %q", got)
	}
}

func TestPreferSrcset_DropsFallbacksWhenDescriptorsExist(t *testing.T) {
	cands := []Candidate{
		{URL: "from-descriptor.jpg", FromSrcset: true},
		{URL: "a-very-long-plain-fallback-name.jpg"},
	}
	got := PreferSrcset(cands)
	if len(got) != 1 || got[0].URL != "from-descriptor.jpg" {
		t.Fatalf("descriptor candidates must outrank plain fallbacks, got %+v", got)
	}
}

func TestPreferSrcset_KeepsFallbacksWhenNoDescriptors(t *testing.T) {
	cands := []Candidate{{URL: "a.jpg"}, {URL: "b.jpg"}}
	got := PreferSrcset(cands)
	if len(got) != 2 {
		t.Fatalf("with no descriptor candidates the list must pass through, got %+v", got)
	}
}

func TestSelectBest_TieKeepsFirst(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	cands := []Candidate{
		{URL: "first.jpg", Width: 500},
		{URL: "second.jpg", Width: 500},
	}
	if got := SelectBest(cands, base); got != "https://example.com/first.jpg" {
		t.Fatalf("tie should keep first occurrence, got %q", got)
	}
}

func TestSelectBest_Empty(t *testing.T) {
	if got := SelectBest(nil, mustBase(t, "https://example.com/")); got != "" {
		t.Fatalf("expected empty string for no candidates, got %q", got)
	}
}

func TestScoreURL_RejectsAdjacentDigits(t *testing.T) {
	// Digit runs longer than five on either side of the x are fragments of
	// bigger numbers, not dimensions.
	u := "photo-1234567x89012345.jpg"
	if got := scoreURL(u); got != len(u) {
		t.Fatalf("expected length fallback %d, got %d", len(u), got)
	}
}

func TestResolve_AbsolutePassThrough(t *testing.T) {
	base := mustBase(t, "https://example.com/a/")
	got := Resolve("https://cdn.example.org/x.jpg", base)
	if got != "https://cdn.example.org/x.jpg" {
		t.Fatalf("absolute URL should pass through, got %q", got)
	}
}
