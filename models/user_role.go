package models

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN_ROLE"
	UserRoleApprover UserRole = "APPROVER_ROLE"
	UserRoleEmployee UserRole = "EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:    "Administrator",
	UserRoleApprover: "Approver",
	UserRoleEmployee: "Employee",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// CanApprove reports whether the role may move a form out of Pending.
func (r UserRole) CanApprove() bool {
	return r == UserRoleAdmin || r == UserRoleApprover
}
