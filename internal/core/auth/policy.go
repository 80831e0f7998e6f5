package auth

import (
	"github.com/proton-market/marketplace-api/internal/core/domain"
)

// Action names a protected operation.
type Action string

const (
	ActionProductCreate     Action = "product:create"
	ActionProductListOwn    Action = "product:list-own"
	ActionRequirementCreate Action = "requirement:create"
	ActionRequirementList   Action = "requirement:list-own"
	ActionProjectCreate     Action = "project:create"
	ActionProjectList       Action = "project:list"
	ActionProjectInvest     Action = "project:invest"
	ActionJobCreate         Action = "job:create"
	ActionJobList           Action = "job:list"
	ActionJobApply          Action = "job:apply"
	ActionAdminOverview     Action = "admin:overview"
	ActionAdminUserStatus   Action = "admin:user-status"
)

type rule struct {
	public bool
	roles  []domain.Role
	detail string
}

// rules is the complete authorization table. Decisions depend on the role
// alone; ownership is applied later through query filters.
var rules = map[Action]rule{
	ActionProductCreate:     {roles: []domain.Role{domain.RoleVendor}, detail: "Only vendors can create products"},
	ActionProductListOwn:    {roles: []domain.Role{domain.RoleVendor}, detail: "Only vendors can view this"},
	ActionRequirementCreate: {roles: []domain.Role{domain.RoleBuyer}, detail: "Only buyers can post requirements"},
	ActionRequirementList:   {roles: []domain.Role{domain.RoleBuyer}, detail: "Only buyers can view this"},
	ActionProjectCreate:     {roles: []domain.Role{domain.RoleVendor, domain.RoleAdmin}, detail: "Only vendors or admins can create projects"},
	ActionProjectList:       {public: true},
	ActionProjectInvest:     {roles: []domain.Role{domain.RoleInvestor}, detail: "Only investors can invest"},
	ActionJobCreate:         {roles: []domain.Role{domain.RoleVendor, domain.RoleAdmin}, detail: "Only vendors/admins can post jobs"},
	ActionJobList:           {public: true},
	ActionJobApply:          {roles: []domain.Role{domain.RoleEmployee, domain.RoleAdmin}, detail: "Only employees/admins can apply"},
	ActionAdminOverview:     {roles: []domain.Role{domain.RoleAdmin}, detail: "Admin only"},
	ActionAdminUserStatus:   {roles: []domain.Role{domain.RoleAdmin}, detail: "Admin only"},
}

// Authorize returns nil when role may perform action, and an
// *domain.AccessDeniedError otherwise. Unknown actions are denied.
func Authorize(action Action, role domain.Role) error {
	r, ok := rules[action]
	if !ok {
		return &domain.AccessDeniedError{Detail: "Forbidden"}
	}
	if r.public {
		return nil
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return nil
		}
	}
	return &domain.AccessDeniedError{Detail: r.detail}
}

// IsPublic reports whether action needs no authenticated caller.
func IsPublic(action Action) bool {
	return rules[action].public
}

// AllowedRoles returns the roles permitted to perform action. Public actions
// return every role.
func AllowedRoles(action Action) []domain.Role {
	r, ok := rules[action]
	if !ok {
		return nil
	}
	if r.public {
		return append([]domain.Role(nil), domain.Roles...)
	}
	return append([]domain.Role(nil), r.roles...)
}
