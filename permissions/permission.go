package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one route of the table. An empty role list admits any authenticated caller.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// PermissionData is the route table. Skip at the top level disables role checks entirely.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a chi route pattern, ignoring the method case and a trailing slash
// on non-root patterns. Unknown routes get the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalize(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func normalize(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

// Get decodes the embedded table. A malformed table yields nil, which the RBAC middleware
// treats as deny-all.
func Get() *PermissionData {
	var table PermissionData

	if err := json.Unmarshal(permissionsData, &table); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	seen := make(map[string]struct{}, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		key := strings.ToUpper(endpoint.Method) + " " + normalize(endpoint.Path)
		if _, dup := seen[key]; dup {
			log.Warn().Str("route", key).Msg("Duplicate permission entry, the first one wins")
		}

		seen[key] = struct{}{}
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("Loaded embedded permissions")

	return &table
}
