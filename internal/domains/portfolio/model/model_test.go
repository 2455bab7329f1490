package model_test

import (
	"nest/internal/domains/portfolio/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavScrolled(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    bool
	}{
		{scrollY: 0, want: false},
		{scrollY: 50, want: false},
		{scrollY: 50.5, want: true},
		{scrollY: 51, want: true},
		{scrollY: 2000, want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, model.NavScrolled(tt.scrollY), "scrollY=%v", tt.scrollY)
	}

	assert.Equal(t, model.NavClassTop, model.NavClass(50))
	assert.Equal(t, model.NavClassScrolled, model.NavClass(51))
}

func TestParallaxOffset(t *testing.T) {
	assert.InDelta(t, 0, model.ParallaxOffset(0), 0)
	assert.InDelta(t, 60, model.ParallaxOffset(120), 0)
	assert.InDelta(t, 12.5, model.ParallaxOffset(25), 0)
}

func TestNewContent(t *testing.T) {
	content := model.NewContent()

	assert.Equal(t, "Alex Chen", content.Profile.Name)
	assert.Len(t, content.Nav, 4)
	assert.Equal(t, "#about", content.Nav[0].Href)
	assert.Len(t, content.Projects, 3)
	assert.Len(t, content.Skills, 6)
	assert.Len(t, content.Highlights, 3)
	assert.Len(t, content.Contacts, 3)

	assert.InDelta(t, 0.4, content.Projects[2].Motion.Delay, 1e-9)
	assert.InDelta(t, 0.2, content.Highlights[1].Motion.Delay, 1e-9)
	assert.InDelta(t, 0.5, content.Skills[5].Motion.Delay, 1e-9)
	assert.Equal(t, -50, content.Skills[0].Motion.OffsetX)
	assert.Equal(t, 50, content.Projects[0].Motion.OffsetY)

	content.Projects[0].Title = "changed"
	assert.Equal(t, "E-Commerce Platform", model.NewContent().Projects[0].Title)
}

func TestWithOwner(t *testing.T) {
	base := model.NewContent()

	content := base.WithOwner("Sam Park", "sam@example.com")

	assert.Equal(t, "Sam Park", content.Profile.Name)
	assert.Equal(t, "mailto:sam@example.com", content.Contacts[0].Href)
	assert.Equal(t, "sam@example.com", content.Contacts[0].Text)
	assert.Equal(t, "mailto:alex@example.com", base.Contacts[0].Href)

	unchanged := base.WithOwner("", "")
	assert.Equal(t, base, unchanged)
}
