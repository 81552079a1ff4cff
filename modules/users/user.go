package users

import (
	"time"

	"github.com/google/uuid"
)

// Table configuration keys and template names used by the entity.
const (
	TableKey     = "users"
	TemplatePage = "users/page"
	TemplateList = "users/list"
	ConfigLookup = "lookup"
)

// Roles lists the accepted values of the role column.
var Roles = []string{"admin", "editor", "viewer"}

// MaxNameLength bounds the name column in characters.
const MaxNameLength = 100

// User is a row of the users table.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
