package auth

import (
	"net/http"

	"minihotel/infras/otel"
	"minihotel/internal/domains/auth/model/dto"
	"minihotel/internal/domains/auth/service"
	"minihotel/shared"
	"minihotel/shared/constant"
	"minihotel/shared/validator"
	"minihotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh", handler.Refresh)
		routerGroup.Post("/logout", handler.Logout)
	})
}

// ProtectedRouter mounts the endpoints that need an authenticated caller.
func (handler *Handler) ProtectedRouter(router chi.Router) {
	router.Post("/auth/password", handler.ChangePassword)
}

func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refresh")
	defer scope.End()

	var req dto.RefreshRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Refresh(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh tokens")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	var req dto.LogoutRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Logout(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Logged out successfully")
}

func (handler *Handler) ChangePassword(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	identity := shared.IdentityFromContext(ctx)

	if err := handler.service.ChangePassword(ctx, identity.UserID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Password changed successfully")
}
