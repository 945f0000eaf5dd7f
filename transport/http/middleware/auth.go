package middleware

import (
	"context"
	"net/http"

	"minihotel/infras/jwt"
	"minihotel/infras/otel"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/transport/http/response"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	VerifyToken(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// VerifyToken validates the access token and stores its identity claims in
// the request context.
func (m *authImpl) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized(err.Error()))

			return
		}

		claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("rejected access token")
			response.WithError(writer, failure.Unauthorized("invalid or expired token"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireAdmin restricts a route group to the back-office role. It must run
// after VerifyToken.
func (m *authImpl) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		role, _ := request.Context().Value(constant.ContextKeyUserRole).(string)

		if role != constant.RoleAdmin {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
