package dto

import (
	"math"
	"nest/internal/domains/portfolio/model"
	"nest/shared/failure"
	"strconv"
)

type NavState struct {
	ScrollY        float64 `json:"scrollY"`
	Scrolled       bool    `json:"scrolled"`
	Class          string  `json:"class"`
	ParallaxOffset float64 `json:"parallaxOffset"`
}

func (r *NavState) FromScroll(scrollY float64) {
	r.ScrollY = scrollY
	r.Scrolled = model.NavScrolled(scrollY)
	r.Class = model.NavClass(scrollY)
	r.ParallaxOffset = model.ParallaxOffset(scrollY)
}

// ParseScrollY reads the scroll_y query value. An empty value is the top of
// the page.
func ParseScrollY(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	scrollY, err := strconv.ParseFloat(raw, 64)
	if err != nil || scrollY < 0 || math.IsNaN(scrollY) || math.IsInf(scrollY, 0) {
		return 0, failure.BadRequestFromString("scroll_y must be a non-negative number")
	}

	return scrollY, nil
}
