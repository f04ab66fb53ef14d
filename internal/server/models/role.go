package models

// Role is a named permission group. Users and roles are linked through the
// user_roles association.
type Role struct {
	ID   int64
	Name string
}
