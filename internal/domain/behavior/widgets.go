package behavior

import "encoding/json"

// AOSConfig is the animation-on-scroll initialization options.
type AOSConfig struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
	Once     bool   `json:"once"`
	Mirror   bool   `json:"mirror"`
}

// DefaultAOS is the animation configuration applied on every page.
var DefaultAOS = AOSConfig{Duration: 600, Easing: "ease-in-out", Once: true, Mirror: false}

// DefaultLightboxSelector selects the elements handled by the lightbox.
const DefaultLightboxSelector = ".glightbox"

// SliderInit is one slider to initialize. Index is the position of the slider
// among the page's .init-swiper elements.
type SliderInit struct {
	Index            int             `json:"index"`
	CustomPagination bool            `json:"customPagination"`
	Config           json.RawMessage `json:"config"`
}

// WidgetPlan is the widget manifest handed to the browser script.
type WidgetPlan struct {
	AOS              AOSConfig    `json:"aos"`
	LightboxSelector string       `json:"lightboxSelector"`
	Counter          bool         `json:"counter"`
	Sliders          []SliderInit `json:"sliders"`
}

// NewWidgetPlan returns a plan with the default widget configuration and no
// sliders.
func NewWidgetPlan() WidgetPlan {
	return WidgetPlan{
		AOS:              DefaultAOS,
		LightboxSelector: DefaultLightboxSelector,
		Counter:          true,
		Sliders:          []SliderInit{},
	}
}
