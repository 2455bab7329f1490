package portfolio

import (
	"io"
	"net/http"
	"nest/infras/otel"
	"nest/internal/domains/portfolio/model/dto"
	"nest/internal/domains/portfolio/service"
	"nest/shared/constant"
	"nest/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Portfolio
	otel    otel.Otel
}

func New(service service.Portfolio, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// PageRouter serves the rendered page at the site root.
func (handler *Handler) PageRouter(router chi.Router) {
	router.Get("/", handler.Page)
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/portfolio", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetContent)
		routerGroup.Get("/nav", handler.GetNav)
	})
}

// Page renders the portfolio.
// @Summary Portfolio page
// @Description Server-rendered portfolio. scroll_y sets the initial nav and parallax state.
// @Tags Portfolio
// @Produce html
// @Param scroll_y query number false "Vertical scroll offset"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} response.Error
// @Router / [get]
func (handler *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Page")
	defer scope.End()

	scrollY, err := dto.ParseScrollY(r.URL.Query().Get(constant.RequestParamScrollY))
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithHTML(w, http.StatusOK, func(out io.Writer) error {
		return handler.service.Render(ctx, out, scrollY)
	})
}

// GetContent returns the page content.
// @Summary Portfolio content
// @Tags Portfolio
// @Produce json
// @Success 200 {object} response.Data[model.Content]
// @Router /v1/portfolio [get]
func (handler *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContent")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Content(ctx))
}

// GetNav returns the nav state for a scroll offset.
// @Summary Portfolio nav state
// @Tags Portfolio
// @Produce json
// @Param scroll_y query number false "Vertical scroll offset"
// @Success 200 {object} response.Data[dto.NavState]
// @Failure 400 {object} response.Error
// @Router /v1/portfolio/nav [get]
func (handler *Handler) GetNav(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNav")
	defer scope.End()

	scrollY, err := dto.ParseScrollY(r.URL.Query().Get(constant.RequestParamScrollY))
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, handler.service.Nav(ctx, scrollY))
}
