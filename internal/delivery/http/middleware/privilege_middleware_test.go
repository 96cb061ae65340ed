package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"radlab-backoffice/internal/domain/entity"

	"github.com/google/uuid"
)

func serveWithUser(t *testing.T, guard func(http.Handler) http.Handler, user *entity.User) int {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), UserKey, user))
	}
	rec := httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequirePrivilege(t *testing.T) {
	guard := RequirePrivilege(entity.ModuleAppointments, entity.OperationView)

	tests := []struct {
		name string
		user *entity.User
		want int
	}{
		{
			name: "holder of the grant passes",
			user: &entity.User{
				ID: uuid.New(),
				Privileges: entity.PrivilegeGrants{
					{Module: entity.ModuleAppointments, Operations: []string{entity.OperationView}},
				},
			},
			want: http.StatusOK,
		},
		{
			name: "grant on another module is not enough",
			user: &entity.User{
				ID: uuid.New(),
				Privileges: entity.PrivilegeGrants{
					{Module: entity.ModuleAudit, Operations: []string{entity.OperationView}},
				},
			},
			want: http.StatusForbidden,
		},
		{
			name: "grant without the operation is not enough",
			user: &entity.User{
				ID: uuid.New(),
				Privileges: entity.PrivilegeGrants{
					{Module: entity.ModuleAppointments, Operations: []string{entity.OperationCreate}},
				},
			},
			want: http.StatusForbidden,
		},
		{
			name: "super admin bypasses grants",
			user: &entity.User{ID: uuid.New(), IsSuperAdmin: true},
			want: http.StatusOK,
		},
		{
			name: "missing user",
			user: nil,
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serveWithUser(t, guard, tt.user); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *entity.User
		want int
	}{
		{name: "super admin passes", user: &entity.User{ID: uuid.New(), IsSuperAdmin: true}, want: http.StatusOK},
		{name: "regular user rejected", user: &entity.User{ID: uuid.New()}, want: http.StatusForbidden},
		{name: "missing user", user: nil, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serveWithUser(t, RequireSuperAdmin, tt.user); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
