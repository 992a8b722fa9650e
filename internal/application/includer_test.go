package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/gagesite/internal/application"
)

const headerPartial = `<header id="header" class="header sticky-top"><nav id="navmenu" class="navmenu"></nav></header>`

func TestBaseFromScriptURL(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"https://gage.example.org/site/assets/js/include-header.js", "https://gage.example.org/site/"},
		{"https://gage.example.org/assets/js/include-header.js?v=12", "https://gage.example.org/"},
		{"../assets/js/include-header.js", "../"},
		{"assets/js/include-header.js", ""},
		{"", ""},
		{"https://cdn.example.org/other.js", "https://cdn.example.org/other.js"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, application.BaseFromScriptURL(tt.src, "assets/js/include-header.js"), tt.src)
	}
}

func TestFragment_PartialRef(t *testing.T) {
	assert.Equal(t, "partials/header.html", application.HeaderFragment.PartialRef(""))
	assert.Equal(t, "../partials/footer.html", application.FooterFragment.PartialRef("../"))
	assert.Equal(t, "header-placeholder", application.HeaderFragment.PlaceholderID)
	assert.Equal(t, "footer-placeholder", application.FooterFragment.PlaceholderID)
}

func TestInclude_ReplacesPlaceholderVerbatim(t *testing.T) {
	src := &mockPartialSource{partials: map[string]string{"partials/header.html": headerPartial}}
	includer := application.NewFragmentIncluder(src, discardLogger(), nil)

	page := application.Page{Name: "index.html", Body: []byte(`<body><div id="header-placeholder"></div><main></main></body>`)}
	got := includer.Include(context.Background(), page, application.HeaderFragment)

	assert.Equal(t, `<body>`+headerPartial+`<main></main></body>`, string(got.Body))
}

func TestInclude_ResolvesRelativeToIncludeScript(t *testing.T) {
	src := &mockPartialSource{partials: map[string]string{"partials/header.html": headerPartial}}
	includer := application.NewFragmentIncluder(src, discardLogger(), nil)

	page := application.Page{
		Name: "vie-scolaire/personnel.html",
		Body: []byte(`<head><script src="../assets/js/include-header.js?v=2"></script></head><body><div id="header-placeholder"></div></body>`),
	}
	got := includer.Include(context.Background(), page, application.HeaderFragment)

	assert.Equal(t, []string{"partials/header.html"}, src.refs)
	assert.Contains(t, string(got.Body), headerPartial)
}

func TestInclude_WithoutScriptResolvesNextToPage(t *testing.T) {
	src := &mockPartialSource{partials: map[string]string{}}
	includer := application.NewFragmentIncluder(src, discardLogger(), nil)

	page := application.Page{Name: "nouvelles/index.html", Body: []byte(`<div id="footer-placeholder"></div>`)}
	includer.Include(context.Background(), page, application.FooterFragment)

	assert.Equal(t, []string{"nouvelles/partials/footer.html"}, src.refs)
}

func TestInclude_FailureLeavesPlaceholder(t *testing.T) {
	src := &mockPartialSource{err: errors.New("connection refused")}
	includer := application.NewFragmentIncluder(src, discardLogger(), nil)

	body := `<body><div id="header-placeholder"></div></body>`
	got := includer.Include(context.Background(), application.Page{Name: "index.html", Body: []byte(body)}, application.HeaderFragment)

	assert.Equal(t, body, string(got.Body))
}

func TestInclude_MissingPlaceholderIsNoop(t *testing.T) {
	src := &mockPartialSource{partials: map[string]string{"partials/header.html": headerPartial}}
	includer := application.NewFragmentIncluder(src, discardLogger(), nil)

	body := `<body><main>contenu</main></body>`
	var got application.Page
	assert.NotPanics(t, func() {
		got = includer.Include(context.Background(), application.Page{Name: "index.html", Body: []byte(body)}, application.HeaderFragment)
	})

	assert.Equal(t, body, string(got.Body))
	assert.Empty(t, src.refs, "no fetch without a placeholder")
}
