package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role hierarchy: every admin is a manager, every manager is an employee.
var roleInheritance = [][2]string{
	{RoleSuperAdmin, RoleSystemAdmin},
	{RoleSystemAdmin, RoleManager},
	{RoleManager, RoleEmployee},
}

// Static permission policy. Roles come from the session token; the policy
// lives here rather than in the handlers so the role taxonomy can change
// without touching route registrations.
var policies = [][3]string{
	{RoleEmployee, ResourceHoliday, ActionRead},
	{RoleEmployee, ResourceSchedule, ActionRead},
	{RoleEmployee, ResourceScheduleRequest, ActionCreate},
	{RoleEmployee, ResourceScheduleRequest, ActionRead},

	{RoleManager, ResourceSchedule, ActionReadAll},
	{RoleManager, ResourceScheduleRequest, ActionReadAll},
	{RoleManager, ResourceScheduleRequest, ActionDecide},

	{RoleSystemAdmin, ResourceHoliday, ActionManage},
	{RoleSystemAdmin, ResourceSchedule, ActionManage},
	{RoleSystemAdmin, ResourceEmployee, ActionManage},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
