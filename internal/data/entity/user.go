package entity

type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// capabilities maps each role to the set of roles it can act as.
var capabilities = map[Role]map[Role]bool{
	RoleGuest: {RoleGuest: true},
	RoleStaff: {RoleGuest: true, RoleStaff: true},
	RoleAdmin: {RoleGuest: true, RoleStaff: true, RoleAdmin: true},
}

// Can reports whether the role carries the required capability.
func (r Role) Can(required Role) bool {
	return capabilities[r][required]
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

type User struct {
	Base
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FullName     string `db:"full_name"`
	Phone        string `db:"phone"`
	Role         Role   `db:"role"`
	Active       bool   `db:"active"`
}
