// Package page holds the portfolio page component. A page owns one piece
// of state, the scroll offset of the viewport it is mounted on, and derives
// the nav style and hero parallax from it.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"nest/internal/domains/portfolio/model"
	"nest/internal/domains/portfolio/viewport"
	"sync"
)

//go:embed templates/page.html.tmpl
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html.tmpl"))

type Page struct {
	mu           sync.RWMutex
	content      model.Content
	scrollY      float64
	subscription *viewport.Subscription
	mounts       uint64
}

type view struct {
	model.Content
	NavClass string
	Scrolled bool
	Parallax float64
}

func New(content model.Content) *Page {
	return &Page{content: content}
}

// Mount subscribes the page to vp and adopts its current offset. Mounting
// again releases the previous subscription first.
func (p *Page) Mount(vp *viewport.Viewport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()

	p.mounts++
	mount := p.mounts

	// Subscribe before reading so no scroll lands between the two.
	p.subscription = vp.Subscribe(func(scrollY float64) {
		p.onScroll(mount, scrollY)
	})
	p.scrollY = vp.ScrollY()
}

func (p *Page) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()
}

func (p *Page) release() {
	if p.subscription == nil {
		return
	}

	p.subscription.Unsubscribe()
	p.subscription = nil
	p.mounts++
}

// onScroll drops updates dispatched to a listener that was released while
// the viewport was fanning out.
func (p *Page) onScroll(mount uint64, scrollY float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.subscription == nil || mount != p.mounts {
		return
	}

	p.scrollY = scrollY
}

func (p *Page) ScrollY() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.scrollY
}

func (p *Page) NavScrolled() bool {
	return model.NavScrolled(p.ScrollY())
}

func (p *Page) NavClass() string {
	return model.NavClass(p.ScrollY())
}

func (p *Page) ParallaxOffset() float64 {
	return model.ParallaxOffset(p.ScrollY())
}

// Render writes the page markup for the current scroll state.
func (p *Page) Render(w io.Writer) error {
	scrollY := p.ScrollY()

	data := view{
		Content:  p.content,
		NavClass: model.NavClass(scrollY),
		Scrolled: model.NavScrolled(scrollY),
		Parallax: model.ParallaxOffset(scrollY),
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render portfolio page: %w", err)
	}

	return nil
}
