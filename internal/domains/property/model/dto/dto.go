package dto

import (
	"mime/multipart"
	"net/http"
	"nest/internal/domains/property/model"
	"nest/shared"
	gDto "nest/shared/dto"
)

const (
	QueryMinPrice = "min_price"
	QueryMaxPrice = "max_price"
	QueryBedrooms = "bedrooms"
	QueryName     = "name"
)

// InsertProperty is the create payload. Integer columns are pointers so a
// missing value can be told apart from zero.
type InsertProperty struct {
	Name        string  `json:"name"        validate:"required"`
	Address     string  `json:"address"     validate:"required"`
	Price       *int    `json:"price"       validate:"required,gte=0"`
	Bedrooms    *int    `json:"bedrooms"    validate:"required,gte=0"`
	Bathrooms   *int    `json:"bathrooms"   validate:"required,gte=0"`
	Sqft        *int    `json:"sqft"        validate:"required,gte=0"`
	ImageURL    string  `json:"imageUrl"    validate:"required"`
	Description *string `json:"description" validate:"omitempty"`
}

func (r *InsertProperty) ToModel() model.Property {
	return model.Property{
		Name:        r.Name,
		Address:     r.Address,
		Price:       deref(r.Price),
		Bedrooms:    deref(r.Bedrooms),
		Bathrooms:   deref(r.Bathrooms),
		Sqft:        deref(r.Sqft),
		ImageURL:    r.ImageURL,
		Description: r.Description,
	}
}

type UpdateProperty struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,min=1"`
	Address     *string `db:"address"     json:"address"     validate:"omitempty,min=1"`
	Price       *int    `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Bedrooms    *int    `db:"bedrooms"    json:"bedrooms"    validate:"omitempty,gte=0"`
	Bathrooms   *int    `db:"bathrooms"   json:"bathrooms"   validate:"omitempty,gte=0"`
	Sqft        *int    `db:"sqft"        json:"sqft"        validate:"omitempty,gte=0"`
	ImageURL    *string `db:"image_url"   json:"imageUrl"    validate:"omitempty,min=1"`
	Description *string `db:"description" json:"description" validate:"omitempty"`
}

func (r *UpdateProperty) IsEmpty() bool {
	return r.Name == nil && r.Address == nil && r.Price == nil && r.Bedrooms == nil &&
		r.Bathrooms == nil && r.Sqft == nil && r.ImageURL == nil && r.Description == nil
}

// UploadImage is a multipart image upload.
type UploadImage struct {
	File multipart.FileHeader `validate:"mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

// UploadImageBase64 carries an image as a data URI.
type UploadImageBase64 struct {
	Image string `json:"image" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=7"`
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type PropertyResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Price       int     `json:"price"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Sqft        int     `json:"sqft"`
	ImageURL    string  `json:"imageUrl"`
	Description *string `json:"description"`
}

func (r *PropertyResponse) FromModel(m model.Property) {
	r.ID = m.ID
	r.Name = m.Name
	r.Address = m.Address
	r.Price = m.Price
	r.Bedrooms = m.Bedrooms
	r.Bathrooms = m.Bathrooms
	r.Sqft = m.Sqft
	r.ImageURL = m.ImageURL
	r.Description = m.Description
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"totalPage"`
	TotalData  int                `json:"totalData"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}

// PropertyFilter holds the listing query filters.
type PropertyFilter struct {
	MinPrice *int   `json:"minPrice,omitempty"`
	MaxPrice *int   `json:"maxPrice,omitempty"`
	Bedrooms *int   `json:"bedrooms,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (f *PropertyFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.MinPrice = shared.ConvertStringToInt(query.Get(QueryMinPrice))
	f.MaxPrice = shared.ConvertStringToInt(query.Get(QueryMaxPrice))
	f.Bedrooms = shared.ConvertStringToInt(query.Get(QueryBedrooms))
	f.Name = query.Get(QueryName)
}

func (f *PropertyFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.MinPrice != nil {
		group.Add(gDto.Filter{ArgName: QueryMinPrice, Field: model.FieldPrice, Value: *f.MinPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.MaxPrice != nil {
		group.Add(gDto.Filter{ArgName: QueryMaxPrice, Field: model.FieldPrice, Value: *f.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if f.Bedrooms != nil {
		group.Add(gDto.Filter{Field: model.FieldBedrooms, Value: *f.Bedrooms, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Name != "" {
		group.Add(gDto.Filter{Field: model.FieldName, Value: f.Name, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	return group
}

func deref(v *int) int {
	if v == nil {
		return 0
	}

	return *v
}
