package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gagesite/internal/application"
)

const sliderPage = `<html><body>
<div class="swiper init-swiper">
  <script type="application/json" class="swiper-config">
    {"loop": true, "speed": 600, "autoplay": {"delay": 5000}}
  </script>
</div>
<div class="swiper init-swiper swiper-tab">
  <script type="application/json" class="swiper-config">{"slidesPerView": 1}</script>
</div>
<div class="swiper init-swiper">
  <script type="application/json" class="swiper-config">{broken</script>
</div>
<div class="swiper init-swiper"></div>
</body></html>`

func TestPlanWidgets(t *testing.T) {
	plan := application.PlanWidgets([]byte(sliderPage), discardLogger())

	require.Len(t, plan.Sliders, 2)

	assert.Equal(t, 0, plan.Sliders[0].Index)
	assert.False(t, plan.Sliders[0].CustomPagination)
	assert.JSONEq(t, `{"loop": true, "speed": 600, "autoplay": {"delay": 5000}}`, string(plan.Sliders[0].Config))

	assert.Equal(t, 1, plan.Sliders[1].Index)
	assert.True(t, plan.Sliders[1].CustomPagination)

	assert.Equal(t, 600, plan.AOS.Duration)
	assert.Equal(t, ".glightbox", plan.LightboxSelector)
}

func TestPlanWidgets_NoSliders(t *testing.T) {
	plan := application.PlanWidgets([]byte(`<html><body><p>x</p></body></html>`), discardLogger())

	assert.Empty(t, plan.Sliders)
	assert.NotNil(t, plan.Sliders)
}
