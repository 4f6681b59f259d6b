package permissions_test

import (
	"mentorbook/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name        string
		path        string
		method      string
		skip        bool
		permissions []string
	}{
		{name: "public slot listing", path: "/v1/targets/{targetId}/slots", method: "GET", skip: true},
		{name: "admin booking listing", path: "/v1/bookings/", method: "GET", permissions: []string{"admin", "superadmin"}},
		{name: "member booking creation", path: "/v1/bookings/", method: "POST"},
		{name: "trailing slash and method case", path: "/v1/bookings", method: "get", permissions: []string{"admin", "superadmin"}},
		{name: "unknown route", path: "/v1/nope", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, got.Skip)
			assert.ElementsMatch(t, tt.permissions, got.Permissions)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	admins := permissions.Permission{Permissions: []string{"admin"}}

	assert.True(t, admins.Allows("admin"))
	assert.False(t, admins.Allows("member"))
	assert.False(t, admins.Allows(""))
	assert.True(t, permissions.Permission{}.Allows("member"))
	assert.True(t, permissions.Permission{Skip: true, Permissions: []string{"admin"}}.Allows(""))
}
