package service

import (
	"context"
	"io"
	"nest/config"
	"nest/infras/otel"
	"nest/internal/domains/portfolio/model"
	"nest/internal/domains/portfolio/model/dto"
	"nest/internal/domains/portfolio/page"
	"nest/internal/domains/portfolio/viewport"
	"nest/shared/constant"
)

type Portfolio interface {
	Content(ctx context.Context) model.Content
	Nav(ctx context.Context, scrollY float64) dto.NavState
	Render(ctx context.Context, w io.Writer, scrollY float64) error
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Portfolio {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Content(ctx context.Context) model.Content {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Content")
	defer scope.End()

	return s.content()
}

func (s *serviceImpl) Nav(ctx context.Context, scrollY float64) (res dto.NavState) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Nav")
	defer scope.End()

	res.FromScroll(scrollY)

	return res
}

// Render mounts a fresh page on a viewport scrolled to scrollY and writes
// its markup.
func (s *serviceImpl) Render(ctx context.Context, w io.Writer, scrollY float64) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Render")
	defer scope.End()
	defer scope.TraceIfError(err)

	vp := viewport.New()

	p := page.New(s.content())
	p.Mount(vp)
	defer p.Unmount()

	vp.Scroll(scrollY)

	return p.Render(w) //nolint:wrapcheck
}

func (s *serviceImpl) content() model.Content {
	return model.NewContent().WithOwner(s.cfg.App.Portfolio.Owner, s.cfg.App.Portfolio.Email)
}
