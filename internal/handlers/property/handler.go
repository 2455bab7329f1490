package property

import (
	"bytes"
	"net/http"
	"nest/infras/otel"
	"nest/internal/domains/property/model/dto"
	"nest/internal/domains/property/service"
	"nest/shared"
	"nest/shared/base64"
	"nest/shared/constant"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/validator"
	"nest/transport/http/response"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Property
	otel    otel.Otel
}

func New(service service.Property, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProperty)
		routerGroup.Get("/", handler.GetProperties)
		routerGroup.Get("/{id}", handler.GetPropertyByID)
		routerGroup.Patch("/{id}", handler.UpdateProperty)
		routerGroup.Delete("/{id}", handler.DeleteProperty)
		routerGroup.Post("/upload", handler.UploadImage)
		routerGroup.Post("/upload/base64", handler.UploadImageBase64)
	})
}

// CreateProperty handles the creation of a new property.
// @Summary Create a new property
// @Description Create a property listing. Price is an integer amount in cents.
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.InsertProperty true "Insert Property Request"
// @Success 201 {object} response.Data[gDto.IDResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [post]
// @Security BearerAuth
func (handler *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProperty")
	defer scope.End()

	req := dto.InsertProperty{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property created successfully")
	response.WithJSON(w, http.StatusCreated, gDto.IDResponse{ID: id})
}

// GetProperties retrieves properties matching the query filters.
// @Summary Get all properties
// @Description Retrieve properties with optional filtering, sorting and pagination.
// @Tags Property
// @Accept json
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Param min_price query int false "Minimum price"
// @Param max_price query int false "Maximum price"
// @Param bedrooms query int false "Exact bedroom count"
// @Param name query string false "Name contains"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/properties [get]
func (handler *Handler) GetProperties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.PropertyFilter{}
	filter.FromRequest(r)

	properties, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get properties")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Properties retrieved successfully")
	response.WithJSON(w, http.StatusOK, properties)
}

// GetPropertyByID retrieves a property by its ID.
// @Summary Get a property by ID
// @Tags Property
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [get]
func (handler *Handler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	property, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property by ID")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, property)
}

// UpdateProperty patches an existing property.
// @Summary Update a property by ID
// @Tags Property
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Param request body dto.UpdateProperty true "Update Property Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProperty")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateProperty{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property updated successfully")
	response.WithMessage(w, http.StatusOK, "Property updated successfully")
}

// DeleteProperty deletes a property and its uploaded image.
// @Summary Delete a property by ID
// @Tags Property
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProperty")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Property deleted successfully")
	response.WithMessage(w, http.StatusOK, "Property deleted successfully")
}

// UploadImage uploads a property image to object storage.
// @Summary Upload a property image
// @Tags Property
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (jpeg, png or webp, max 5 MB)"
// @Success 200 {object} response.Data[dto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")
		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadImage{File: *fileHeader}

	if err = validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)

	res, err := handler.service.UploadImage(ctx, uuid.NewString()+filepath.Ext(fileHeader.Filename), contentType, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image uploaded successfully")
	response.WithJSON(w, http.StatusOK, res)
}

// UploadImageBase64 uploads a property image sent as a data URI.
// @Summary Upload a property image as base64
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.UploadImageBase64 true "Data URI image"
// @Success 200 {object} response.Data[dto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/upload/base64 [post]
// @Security BearerAuth
func (handler *Handler) UploadImageBase64(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImageBase64")
	defer scope.End()

	req := dto.UploadImageBase64{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	contentType, data, err := base64.Decode(req.Image)
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.UploadImage(ctx, uuid.NewString()+base64.Extension(contentType), contentType, bytes.NewReader(data))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")
		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image uploaded successfully")
	response.WithJSON(w, http.StatusOK, res)
}
