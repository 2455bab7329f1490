package model

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
)

// User is an account that can sign in to the management API. Password holds
// a bcrypt hash.
type User struct {
	ID       int    `db:"id"       generated:"true"`
	Username string `db:"username"`
	Password string `db:"password"`
}
