package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Privilege modules. The set is closed: grants referencing anything else are rejected.
const (
	ModuleUsers           = "users"
	ModulePatients        = "patients"
	ModuleDoctors         = "doctors"
	ModuleAppointments    = "appointments"
	ModuleScans           = "scans"
	ModuleScanCategories  = "scanCategories"
	ModuleStock           = "stock"
	ModuleRadiologists    = "radiologists"
	ModulePatientHistory  = "patientHistory"
	ModuleExpenses        = "expenses"
	ModuleBranches        = "branches"
	ModuleAudit           = "audit"
	ModuleRepresentatives = "representatives"
	ModuleDashboard       = "dashboard"
	ModuleMeta            = "meta"
)

// Privilege operations.
const (
	OperationView         = "view"
	OperationCreate       = "create"
	OperationUpdate       = "update"
	OperationDelete       = "delete"
	OperationApprove      = "approve"
	OperationMakeHugeSale = "makeHugeSale"
)

var validModules = map[string]bool{
	ModuleUsers:           true,
	ModulePatients:        true,
	ModuleDoctors:         true,
	ModuleAppointments:    true,
	ModuleScans:           true,
	ModuleScanCategories:  true,
	ModuleStock:           true,
	ModuleRadiologists:    true,
	ModulePatientHistory:  true,
	ModuleExpenses:        true,
	ModuleBranches:        true,
	ModuleAudit:           true,
	ModuleRepresentatives: true,
	ModuleDashboard:       true,
	ModuleMeta:            true,
}

var validOperations = map[string]bool{
	OperationView:         true,
	OperationCreate:       true,
	OperationUpdate:       true,
	OperationDelete:       true,
	OperationApprove:      true,
	OperationMakeHugeSale: true,
}

// IsValidModule reports whether the module name belongs to the closed set.
func IsValidModule(module string) bool {
	return validModules[module]
}

// IsValidOperation reports whether the operation name belongs to the closed set.
func IsValidOperation(op string) bool {
	return validOperations[op]
}

// PrivilegeGrant is one (module, operations) grant with provenance.
type PrivilegeGrant struct {
	Module     string     `json:"module"`
	Operations []string   `json:"operations"`
	GrantedBy  *uuid.UUID `json:"grantedBy,omitempty"`
	GrantedAt  time.Time  `json:"grantedAt"`
}

// HasOperation reports whether the grant includes the operation.
func (g *PrivilegeGrant) HasOperation(op string) bool {
	for _, o := range g.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// PrivilegeGrants is the embedded grant set, stored as JSONB.
type PrivilegeGrants []PrivilegeGrant

func (p PrivilegeGrants) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "[]", nil
	}
	return json.Marshal(p)
}

func (p *PrivilegeGrants) Scan(value interface{}) error {
	*p = nil
	return scanJSONB(value, p)
}

// Find returns the grant for a module, or nil.
func (p PrivilegeGrants) Find(module string) *PrivilegeGrant {
	for i := range p {
		if p[i].Module == module {
			return &p[i]
		}
	}
	return nil
}

// Grant adds operations to the module entry, creating it when absent.
// Already-present operations are kept once.
func (p PrivilegeGrants) Grant(module string, operations []string, grantedBy *uuid.UUID, grantedAt time.Time) PrivilegeGrants {
	existing := p.Find(module)
	if existing == nil {
		p = append(p, PrivilegeGrant{
			Module:     module,
			Operations: append([]string(nil), operations...),
			GrantedBy:  grantedBy,
			GrantedAt:  grantedAt,
		})
		return p
	}

	for _, op := range operations {
		if !existing.HasOperation(op) {
			existing.Operations = append(existing.Operations, op)
		}
	}
	existing.GrantedBy = grantedBy
	existing.GrantedAt = grantedAt
	return p
}

// Revoke removes operations from the module entry. When no operations remain,
// the module entry itself is removed.
func (p PrivilegeGrants) Revoke(module string, operations []string) PrivilegeGrants {
	existing := p.Find(module)
	if existing == nil {
		return p
	}

	revoked := make(map[string]bool, len(operations))
	for _, op := range operations {
		revoked[op] = true
	}

	var remaining []string
	for _, op := range existing.Operations {
		if !revoked[op] {
			remaining = append(remaining, op)
		}
	}

	if len(remaining) == 0 {
		var out PrivilegeGrants
		for i := range p {
			if p[i].Module != module {
				out = append(out, p[i])
			}
		}
		return out
	}

	existing.Operations = remaining
	return p
}
