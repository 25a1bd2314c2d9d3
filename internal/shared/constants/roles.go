package constants

// Role values carried in the JWT "role" claim and stored on user rows.
// The single authority for these strings; middleware and the users
// package both derive from here.
const (
	ROLE_USER  = "USER"
	ROLE_ADMIN = "ADMIN"
)
