package page_test

import (
	"bytes"
	"nest/internal/domains/portfolio/model"
	"nest/internal/domains/portfolio/page"
	"nest/internal/domains/portfolio/viewport"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageTracksScroll(t *testing.T) {
	vp := viewport.New()
	p := page.New(model.NewContent())

	p.Mount(vp)
	assert.Equal(t, 1, vp.Listeners())
	assert.False(t, p.NavScrolled())
	assert.Equal(t, model.NavClassTop, p.NavClass())

	vp.Scroll(50)
	assert.False(t, p.NavScrolled())

	vp.Scroll(51)
	assert.True(t, p.NavScrolled())
	assert.Equal(t, model.NavClassScrolled, p.NavClass())
	assert.InDelta(t, 25.5, p.ParallaxOffset(), 1e-9)

	p.Unmount()
	assert.Equal(t, 0, vp.Listeners())

	vp.Scroll(0)
	assert.InDelta(t, 51, p.ScrollY(), 0)

	p.Unmount()
}

func TestPageRemountReleasesPrevious(t *testing.T) {
	first, second := viewport.New(), viewport.New()
	second.Scroll(300)

	p := page.New(model.NewContent())

	p.Mount(first)
	p.Mount(second)

	assert.Equal(t, 0, first.Listeners())
	assert.Equal(t, 1, second.Listeners())
	assert.InDelta(t, 300, p.ScrollY(), 0)

	first.Scroll(10)
	assert.InDelta(t, 300, p.ScrollY(), 0)
}

func TestPageIgnoresScrollAfterUnmount(t *testing.T) {
	for range 50 {
		vp := viewport.New()
		p := page.New(model.NewContent())

		var seen float64

		vp.Subscribe(func(float64) {
			seen = p.ScrollY()
			p.Unmount()
		})
		p.Mount(vp)

		vp.Scroll(120)

		assert.InDelta(t, seen, p.ScrollY(), 0)
		assert.Equal(t, 1, vp.Listeners())
	}
}

func TestPageMountWhileScrolling(t *testing.T) {
	for range 20 {
		vp := viewport.New()
		p := page.New(model.NewContent())

		var wg sync.WaitGroup

		wg.Add(1)

		go func() {
			defer wg.Done()

			for y := range 500 {
				vp.Scroll(float64(y + 1))
			}
		}()

		p.Mount(vp)
		wg.Wait()

		assert.InDelta(t, vp.ScrollY(), p.ScrollY(), 0)
		p.Unmount()
	}
}

func TestPageRender(t *testing.T) {
	vp := viewport.New()
	p := page.New(model.NewContent())

	p.Mount(vp)
	defer p.Unmount()

	var top bytes.Buffer
	require.NoError(t, p.Render(&top))

	html := top.String()
	assert.Contains(t, html, "<title>Alex Chen | Frontend Developer</title>")
	assert.Contains(t, html, model.NavClassTop)
	assert.Contains(t, html, `data-scrolled="false"`)
	assert.Contains(t, html, `id="about"`)
	assert.Contains(t, html, `id="contact"`)
	assert.Contains(t, html, `href="mailto:alex@example.com"`)
	assert.Contains(t, html, "Analytics Dashboard")
	assert.Contains(t, html, "width: 95%")
	assert.Equal(t, 3, strings.Count(html, "<article"))

	vp.Scroll(200)

	var scrolled bytes.Buffer
	require.NoError(t, p.Render(&scrolled))

	assert.Contains(t, scrolled.String(), model.NavClassScrolled)
	assert.Contains(t, scrolled.String(), `data-scrolled="true"`)
	assert.Contains(t, scrolled.String(), "translateY(100px)")
}

func TestPageRenderEscapes(t *testing.T) {
	content := model.NewContent().WithOwner("<script>x</script>", "")

	var buf bytes.Buffer
	require.NoError(t, page.New(content).Render(&buf))

	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
