package models

// User represents a storefront customer account.
// Accounts are provisioned outside the storefront; the core only reads them
// during authentication and checkout.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name shown in the storefront and in e-mails.
	Name string `json:"name"`

	// Login is the unique login identifier used to authenticate.
	Login string `json:"login"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// Email is the unique address that receives order confirmations.
	Email string `json:"email"`

	// Active reports whether the account may log in.
	Active bool `json:"active"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// LoginRequest carries credentials submitted to the login endpoint.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
