package models

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
)

// AdminUserID is the subject of tokens issued to the configured admin account.
const AdminUserID = "admin"

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	}
	return false
}

// Collection returns the collection holding accounts of the role. Admin
// has none.
func (r UserRole) Collection() string {
	switch r {
	case RoleTeacher:
		return CollectionTeachers
	case RoleStudent:
		return CollectionStudents
	case RoleParent:
		return CollectionParents
	}
	return ""
}
