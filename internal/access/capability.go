package access

import (
	"fmt"
	"slices"

	"github.com/UnknownOlympus/athena/internal/appconfig"
)

// Service scopes a capability check.
type Service string

const (
	ServiceProject  Service = "project"
	ServicePlatform Service = "platform"
)

// Operation is the action a capability check asks about.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

var allOperations = []Operation{OperationCreate, OperationRead, OperationUpdate, OperationDelete}

// Entity names as used in capability checks.
const (
	EntitySickLeave = "sick_leave"
	EntityEmployee  = "employee"
	EntityUser      = "user"
	EntityCompany   = "company"
)

// Capability is one service/entity/operation triple.
type Capability struct {
	Service   Service
	Entity    string
	Operation Operation
}

func (c Capability) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Service, c.Entity, c.Operation)
}

type grant struct {
	service    Service
	entity     string
	operations []Operation
}

// abilityGrants translates configured ability names into capabilities.
var abilityGrants = map[string]grant{
	"Manage sick leave records": {ServiceProject, EntitySickLeave, allOperations},
	"Manage employee records":   {ServiceProject, EntityEmployee, allOperations},
	"Manage user records":       {ServiceProject, EntityUser, allOperations},
	"Manage company records":    {ServiceProject, EntityCompany, allOperations},
}

// KnownAbilities lists the ability names the authorizer understands.
func KnownAbilities() []string {
	out := make([]string, 0, len(abilityGrants))
	for name := range abilityGrants {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Authorizer decides capability checks for roles.
type Authorizer struct {
	byRole map[string]map[Capability]struct{}
}

// NewAuthorizer expands every tenant role's abilities into capabilities.
// Unknown ability names are rejected.
func NewAuthorizer(cfg *appconfig.AppConfig) (*Authorizer, error) {
	for _, ability := range slices.Concat(cfg.OwnerAbilities(), cfg.CustomerAbilities()) {
		if _, ok := abilityGrants[ability]; !ok {
			return nil, fmt.Errorf("unknown ability %q", ability)
		}
	}

	a := &Authorizer{byRole: make(map[string]map[Capability]struct{})}
	for _, role := range cfg.TenantRoles() {
		caps := make(map[Capability]struct{})
		for _, ability := range cfg.AbilitiesFor(role) {
			g := abilityGrants[ability]
			for _, op := range g.operations {
				caps[Capability{Service: g.service, Entity: g.entity, Operation: op}] = struct{}{}
			}
		}
		a.byRole[role] = caps
	}
	return a, nil
}

// Can reports whether p holds capability c.
func (a *Authorizer) Can(p *Principal, c Capability) bool {
	if p == nil {
		return false
	}
	_, ok := a.byRole[p.Role][c]
	return ok
}

// Check is Can returning ErrForbidden on denial.
func (a *Authorizer) Check(p *Principal, c Capability) error {
	if !a.Can(p, c) {
		return fmt.Errorf("%w: %s", ErrForbidden, c)
	}
	return nil
}

// Capabilities returns the sorted capabilities of role.
func (a *Authorizer) Capabilities(role string) []Capability {
	out := make([]Capability, 0, len(a.byRole[role]))
	for c := range a.byRole[role] {
		out = append(out, c)
	}
	slices.SortFunc(out, func(x, y Capability) int {
		if x.String() < y.String() {
			return -1
		}
		if x.String() > y.String() {
			return 1
		}
		return 0
	})
	return out
}
