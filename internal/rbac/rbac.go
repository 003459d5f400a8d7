package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role-nya fixed (EMPLOYEE, COWORKER, MANAGER), jadi policy-nya statis dan
// dimuat sekali saat startup — tidak ada policy per organisasi di database.
// Pembatasan per-resource yang lebih halus (siapa boleh lihat feedback siapa)
// tetap ada di permission predicates, bukan di sini.
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

// [role, resource, action]
var policies = [][]string{
	{"EMPLOYEE", "profile", "read"},
	{"EMPLOYEE", "profile", "update"},
	{"EMPLOYEE", "feedback", "read"},
	{"EMPLOYEE", "feedback", "create"},
	{"EMPLOYEE", "feedback", "delete"},
	{"EMPLOYEE", "absence", "read"},
	{"EMPLOYEE", "absence", "create"},
	{"EMPLOYEE", "absence", "cancel"},
	{"EMPLOYEE", "notification", "read"},
	{"EMPLOYEE", "notification", "update"},
	{"EMPLOYEE", "organization", "read"},

	{"MANAGER", "absence", "review"},
	{"MANAGER", "invitation", "manage"},
	{"MANAGER", "member", "manage"},
	{"MANAGER", "organization", "manage"},
	{"MANAGER", "security", "read"},
}

// COWORKER mewarisi EMPLOYEE; MANAGER mewarisi COWORKER.
var groupings = [][]string{
	{"COWORKER", "EMPLOYEE"},
	{"MANAGER", "COWORKER"},
}

// NewEnforcer membangun casbin enforcer dengan policy statis di atas.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
