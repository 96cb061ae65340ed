package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIsValidModule(t *testing.T) {
	for _, m := range []string{ModuleAppointments, ModuleStock, ModuleAudit, ModuleMeta} {
		if !IsValidModule(m) {
			t.Errorf("IsValidModule(%s) = false, want true", m)
		}
	}
	if IsValidModule("billing") {
		t.Error("IsValidModule(billing) = true, want false")
	}
}

func TestIsValidOperation(t *testing.T) {
	for _, op := range []string{OperationView, OperationApprove, OperationMakeHugeSale} {
		if !IsValidOperation(op) {
			t.Errorf("IsValidOperation(%s) = false, want true", op)
		}
	}
	if IsValidOperation("export") {
		t.Error("IsValidOperation(export) = true, want false")
	}
}

func TestPrivilegeGrantsGrant(t *testing.T) {
	grantedBy := uuid.New()
	now := time.Now()

	var grants PrivilegeGrants
	grants = grants.Grant(ModulePatients, []string{OperationView, OperationCreate}, &grantedBy, now)

	grant := grants.Find(ModulePatients)
	if grant == nil {
		t.Fatal("Find(patients) = nil after Grant")
	}
	if !grant.HasOperation(OperationView) || !grant.HasOperation(OperationCreate) {
		t.Errorf("grant operations = %v, want view and create", grant.Operations)
	}

	// Granting an already-present operation must not duplicate it.
	grants = grants.Grant(ModulePatients, []string{OperationView, OperationDelete}, &grantedBy, now)
	grant = grants.Find(ModulePatients)
	if len(grant.Operations) != 3 {
		t.Errorf("operations after re-grant = %v, want 3 entries", grant.Operations)
	}
}

func TestPrivilegeGrantsRevoke(t *testing.T) {
	grantedBy := uuid.New()
	now := time.Now()

	var grants PrivilegeGrants
	grants = grants.Grant(ModuleStock, []string{OperationView, OperationUpdate}, &grantedBy, now)
	grants = grants.Grant(ModuleScans, []string{OperationView}, &grantedBy, now)

	grants = grants.Revoke(ModuleStock, []string{OperationUpdate})
	grant := grants.Find(ModuleStock)
	if grant == nil {
		t.Fatal("Find(stock) = nil, grant should remain with view")
	}
	if grant.HasOperation(OperationUpdate) {
		t.Error("update still present after revoke")
	}

	// Revoking the last operation removes the module entry.
	grants = grants.Revoke(ModuleStock, []string{OperationView})
	if grants.Find(ModuleStock) != nil {
		t.Error("Find(stock) != nil after revoking all operations")
	}
	if grants.Find(ModuleScans) == nil {
		t.Error("unrelated module entry was dropped")
	}

	// Revoking an absent module is a no-op.
	before := len(grants)
	grants = grants.Revoke(ModuleDoctors, []string{OperationView})
	if len(grants) != before {
		t.Error("Revoke on absent module changed the grant set")
	}
}

func TestUserAllow(t *testing.T) {
	active := true
	grantedBy := uuid.New()

	user := &User{
		IsActive: &active,
		Privileges: PrivilegeGrants{}.Grant(
			ModuleAppointments,
			[]string{OperationView, OperationCreate},
			&grantedBy,
			time.Now(),
		),
	}

	tests := []struct {
		name      string
		module    string
		operation string
		want      bool
	}{
		{"granted operation", ModuleAppointments, OperationView, true},
		{"ungranted operation on granted module", ModuleAppointments, OperationMakeHugeSale, false},
		{"ungranted module", ModuleStock, OperationView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := user.Allow(tt.module, tt.operation); got != tt.want {
				t.Errorf("Allow(%s, %s) = %v, want %v", tt.module, tt.operation, got, tt.want)
			}
		})
	}
}

func TestUserAllowSuperAdmin(t *testing.T) {
	user := &User{IsSuperAdmin: true}
	if !user.Allow(ModuleMeta, OperationMakeHugeSale) {
		t.Error("super admin was denied, want unconditional allow")
	}
}
