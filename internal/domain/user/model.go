package user

// Principal is the authenticated caller as reported by the account service.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

const RoleAdmin = "admin"

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
