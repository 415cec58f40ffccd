package scope

import (
	"testing"

	"github.com/newsgrab/newsgrab/internal/profile"
)

func TestWrapperScope_InheritedByNestedDivs(t *testing.T) {
	tr := New(profile.DailyMail())

	tr.Open("div", Attrs{Class: "page"})
	if tr.InScope() {
		t.Fatalf("plain div must not open scope")
	}
	tr.Open("div", Attrs{Class: "hero image-wrap"})
	if !tr.InScope() {
		t.Fatalf("image-wrap div must open scope")
	}
	tr.Open("div", Attrs{Class: "inner"})
	if !tr.InScope() {
		t.Fatalf("scope must be inherited by nested divs")
	}
	tr.Close("div")
	tr.Close("div")
	if tr.InScope() {
		t.Fatalf("scope must end when the wrapper closes")
	}
	tr.Close("div")
}

func TestWrapperScope_ClassTokenMatch(t *testing.T) {
	tr := New(profile.DailyMail())
	// "image-wrapper" contains the wanted string but is a different token.
	tr.Open("div", Attrs{Class: "image-wrapper"})
	if tr.InScope() {
		t.Fatalf("class match must be token-exact")
	}
}

func TestUnmatchedEndTagsIgnored(t *testing.T) {
	tr := New(profile.Guardian())
	tr.Close("div")
	tr.Close("figure")
	tr.Close("main")
	tr.Close("picture")
	if tr.InScope() || tr.InPicture() {
		t.Fatalf("closing never-opened tags must not corrupt state")
	}
}

func TestArticleFigureScope(t *testing.T) {
	tr := New(profile.Guardian())

	tr.Open("article", Attrs{})
	if tr.InScope() {
		t.Fatalf("article outside main must not count")
	}
	tr.Close("article")

	tr.Open("main", Attrs{})
	tr.Open("article", Attrs{})
	if tr.InScope() {
		t.Fatalf("article alone is not enough, a figure is required")
	}
	tr.Open("figure", Attrs{})
	if !tr.InScope() {
		t.Fatalf("figure inside main>article must be in scope")
	}
	tr.Close("figure")
	if tr.InScope() {
		t.Fatalf("scope must end with the figure")
	}
}

func TestLightboxScope(t *testing.T) {
	tr := New(profile.Guardian())

	tr.Open("div", Attrs{ID: "gu-lightbox"})
	if !tr.InScope() {
		t.Fatalf("lightbox div must be in scope")
	}
	tr.Open("div", Attrs{})
	if !tr.InScope() {
		t.Fatalf("lightbox scope must be inherited")
	}
	tr.Close("div")
	tr.Close("div")
	if tr.InScope() {
		t.Fatalf("scope must end when the lightbox closes")
	}

	tr.Open("div", Attrs{Role: "dialog"})
	if !tr.InScope() {
		t.Fatalf("role=dialog must also open the lightbox")
	}
}

func TestPictureAndNoscriptCountOnlyInScope(t *testing.T) {
	tr := New(profile.DailyMail())

	tr.Open("picture", Attrs{})
	if tr.InPicture() {
		t.Fatalf("picture outside scope must not count")
	}
	tr.Open("div", Attrs{Class: "image-wrap"})
	tr.Open("picture", Attrs{})
	if !tr.InPicture() {
		t.Fatalf("picture in scope must count")
	}
	tr.Open("noscript", Attrs{})
	if !tr.InNoscript() {
		t.Fatalf("noscript in scope must count")
	}
	tr.Close("noscript")
	tr.Close("picture")
	if tr.InPicture() || tr.InNoscript() {
		t.Fatalf("counters must return to zero")
	}
}
