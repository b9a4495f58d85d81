package domain

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
	UserRoleClient   UserRole = "client"
)

// IsStaff reports whether the role belongs to agency staff.
func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleEmployee
}

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	CompanyName  string   `json:"company_name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	// Clients sign in with a one-time login code instead of a password.
	// The hash is what login verifies against; the raw copy is kept so an
	// admin can read the code back to the client.
	LoginCodeHash string `json:"-"`
	RawLoginCode  string `json:"login_code,omitempty"`
	CreatedOn     string `json:"created_on"`
	UpdatedOn     string `json:"updated_on"`
}

// HasLoginCode reports whether a login code has been issued for this user.
func (u *User) HasLoginCode() bool {
	return u.LoginCodeHash != ""
}
