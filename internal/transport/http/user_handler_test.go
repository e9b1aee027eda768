package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
)

func TestAdminUsers(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(http.MethodGet, "/api/admin/users", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeBody(t, rec)["users"].([]any), 2)

	path := fmt.Sprintf("/api/admin/users/%s/role", api.traveller.ID)
	rec = api.do(http.MethodPut, path, adminToken, `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.RoleAdmin, api.profiles.rows[api.traveller.ID].Role)

	requireError(t, api.do(http.MethodPut, path, adminToken, `{"role":"owner"}`), http.StatusBadRequest, `role must be "user" or "admin"`)

	self := fmt.Sprintf("/api/admin/users/%s/role", api.admin.ID)
	requireError(t, api.do(http.MethodPut, self, adminToken, `{"role":"user"}`), http.StatusConflict, "Admins cannot remove their own admin role")
}
