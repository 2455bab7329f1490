package auth

import (
	"net/http"
	"nest/infras/otel"
	"nest/internal/domains/auth/model/dto"
	"nest/internal/domains/auth/service"
	userDto "nest/internal/domains/user/model/dto"
	userService "nest/internal/domains/user/service"
	"nest/shared"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/validator"
	"nest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Auth
	userService userService.User
	otel        otel.Otel
}

func New(service service.Auth, userService userService.User, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		userService: userService,
		otel:        otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Get("/me", handler.Me)
		r.Patch("/password", handler.ChangePassword)
	})
}

// currentUserID reads the id the auth middleware stored on the request.
func currentUserID(r *http.Request) (int, error) {
	raw, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	id, err := shared.ParseID(raw)
	if err != nil {
		return 0, failure.Unauthorized("invalid token subject")
	}

	return id, nil
}

// Register handles user registration
// @Summary Register a new user
// @Description Only username and password are read from the body. A taken username is rejected with 409.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body userDto.InsertUser true "Register Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := userDto.InsertUser{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")
	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// Login handles user login
// @Summary Login a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")
	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[userDto.UserResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	id, err := currentUserID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	user, err := handler.userService.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the signed-in user's password.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body userDto.ChangePassword true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/password [patch]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	id, err := currentUserID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := userDto.ChangePassword{}

	if err = validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.userService.ChangePassword(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Password changed successfully")
	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
