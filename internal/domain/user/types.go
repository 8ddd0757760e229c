package user

type Role string

const (
	RoleStylist      Role = "stylist"
	RoleReceptionist Role = "receptionist"
	RoleManager      Role = "manager"
	RoleAdmin        Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStylist, RoleReceptionist, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
