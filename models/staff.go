package models

// Staff roles as the backend reports them. Admin unlocks the staff
// management surface.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Staff struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
