package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestStaffCard_NoEmailHasNoMailto(t *testing.T) {
	out := render(t, StaffCard(0, model.StaffRecord{Name: "Luc Perron", Department: "Sciences", Role: "Enseignant"}))

	assert.NotContains(t, out, "mailto:")
	assert.NotContains(t, out, "bi-envelope")
	assert.Contains(t, out, "<h4>Luc Perron</h4>")
}

func TestStaffCard_EmailHasExactlyOneMailto(t *testing.T) {
	out := render(t, StaffCard(0, model.StaffRecord{Name: "Julie Roy", Email: "jroy@example.org"}))

	assert.Equal(t, 1, strings.Count(out, "mailto:"))
	assert.Contains(t, out, `href="mailto:jroy@example.org"`)
	assert.Contains(t, out, `aria-label="Email Julie Roy"`)
}

func TestStaffCard_PhotoFallback(t *testing.T) {
	out := render(t, StaffCard(0, model.StaffRecord{Name: "Sans Photo"}))
	assert.Contains(t, out, `src="assets/img/team/team-1.jpg"`)

	out = render(t, StaffCard(0, model.StaffRecord{Name: "Avec Photo", Photo: "assets/img/team/ap.jpg"}))
	assert.Contains(t, out, `src="assets/img/team/ap.jpg"`)
}

func TestStaffCard_StaggerDelay(t *testing.T) {
	for index, want := range map[int]string{0: "100", 5: "600", 6: "100", 11: "600"} {
		out := render(t, StaffCard(index, model.StaffRecord{Name: "x"}))
		assert.Contains(t, out, `data-aos-delay="`+want+`"`, "index %d", index)
	}
}

func TestStaffCard_EscapesFields(t *testing.T) {
	out := render(t, StaffCard(0, model.StaffRecord{Name: `<script>alert(1)</script>`, Role: "A & B"}))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "A &amp; B")
}

func TestStaffCards_InputOrder(t *testing.T) {
	records := []model.StaffRecord{{Name: "Alpha"}, {Name: "Bravo"}, {Name: "Charlie"}}

	out := render(t, StaffCards(records))

	assert.Equal(t, 3, strings.Count(out, `class="col-lg-4 col-md-6 member"`))
	a, b, c := strings.Index(out, "Alpha"), strings.Index(out, "Bravo"), strings.Index(out, "Charlie")
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestStaffCard_Markup(t *testing.T) {
	out := render(t, StaffCard(1, model.StaffRecord{
		Name: "Julie Roy", Department: "Français", Role: "Enseignante",
		Email: "jroy@example.org", Photo: "assets/img/team/jr.jpg",
	}))

	want := `<div class="col-lg-4 col-md-6 member" data-aos="fade-up" data-aos-delay="200">` +
		`<div class="member-img"><img src="assets/img/team/jr.jpg" class="img-fluid" alt="Julie Roy">` +
		`<div class="social"><a href="mailto:jroy@example.org" aria-label="Email Julie Roy"><i class="bi bi-envelope"></i></a></div></div>` +
		`<div class="member-info text-center"><h4>Julie Roy</h4><span>Français</span><p>Enseignante</p></div></div>`
	assert.Equal(t, want, out)
}
