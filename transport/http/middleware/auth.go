package middleware

import (
	"context"
	"errors"
	"mentorbook/config"
	"mentorbook/infras/jwt"
	"mentorbook/infras/otel"
	"mentorbook/permissions"
	"mentorbook/shared/constant"
	"mentorbook/shared/failure"
	"mentorbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallKey struct{}

// AuthRole runs in the order APIKey, Auth, RBAC. A valid API key marks the call as
// internal and the two later stages let it through.
type AuthRole interface {
	APIKey(http.Handler) http.Handler
	Auth(http.Handler) http.Handler
	RBAC(http.Handler) http.Handler
}

type authRole struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	apiKey     string
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRole{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		apiKey:     cfg.App.APIKey,
	}
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

// permissionOf looks the request up by its route pattern, so /v1/bookings/{id} matches
// whatever id was requested.
func (m *authRole) permissionOf(r *http.Request) (string, permissions.Permission) {
	pattern := r.URL.Path

	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.Routes != nil {
		pattern = rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
	}

	if m.permission == nil {
		return pattern, permissions.Permission{}
	}

	return pattern, m.permission.FindPermissions(pattern, r.Method)
}

func (m *authRole) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.apiKey == constant.Empty || key != m.apiKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(w, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), internalCallKey{}, true)))
	})
}

// Auth requires a valid access token. Skip routes stay public but still attach the caller
// when a valid token is sent, so handlers can tailor the response to the viewer.
func (m *authRole) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if isInternal(ctx) {
			next.ServeHTTP(w, r)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		pattern, permission := m.permissionOf(r)
		scope.SetAttributes(map[string]any{"http.path": pattern, "http.method": r.Method})

		header := r.Header.Get(constant.RequestHeaderAuthorization)

		if permission.Skip {
			if header != constant.Empty {
				if authed, err := m.authenticate(ctx, header); err == nil {
					ctx = authed
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))

			return
		}

		if header == constant.Empty {
			err := failure.Unauthorized("Missing authorization header")
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		ctx, err := m.authenticate(ctx, header)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *authRole) authenticate(ctx context.Context, header string) (context.Context, error) {
	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return ctx, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)

	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return ctx, failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return ctx, failure.Unauthorized("Invalid token claims")
	case err != nil:
		return ctx, failure.Unauthorized("Invalid token")
	}

	if claims.UserID == constant.Empty || claims.Email == constant.Empty {
		log.Error().Str("user", claims.UserID).Msg("JWT claims: UserID or Email is empty")

		return ctx, failure.Unauthorized("Invalid token claims")
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

	return ctx, nil
}

// RBAC admits the caller when the route lists no roles or lists the caller's role.
// Without a permission table every route is forbidden.
func (m *authRole) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if isInternal(ctx) {
			next.ServeHTTP(w, r)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.permission == nil {
			response.WithError(w, failure.ForbiddenError)

			return
		}

		_, permission := m.permissionOf(r)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		if !m.permission.Skip && !permission.Allows(role) {
			scope.SetAttributes(map[string]any{"user_role": role, "allowed_roles": permission.Permissions})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(w, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}
