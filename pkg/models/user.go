package models

// User is an account allowed to sign in to the portal.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Role     string `db:"role" json:"role"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
