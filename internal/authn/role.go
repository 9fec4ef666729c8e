package authn

// Role is a user's access level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCashier  Role = "cashier"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCashier, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may act on any order (cashier or admin).
func (r Role) IsStaff() bool { return r == RoleCashier || r == RoleAdmin }
