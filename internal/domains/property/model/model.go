package model

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID          = "id"
	FieldName        = "name"
	FieldAddress     = "address"
	FieldPrice       = "price"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldSqft        = "sqft"
	FieldImageURL    = "image_url"
	FieldDescription = "description"
)

// SortableFields are the columns a listing may be ordered by.
var SortableFields = []string{FieldID, FieldName, FieldPrice, FieldBedrooms, FieldBathrooms, FieldSqft}

// Property is a listing. Price is in cents.
type Property struct {
	ID          int     `db:"id"          generated:"true"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Price       int     `db:"price"`
	Bedrooms    int     `db:"bedrooms"`
	Bathrooms   int     `db:"bathrooms"`
	Sqft        int     `db:"sqft"`
	ImageURL    string  `db:"image_url"`
	Description *string `db:"description"`
}
