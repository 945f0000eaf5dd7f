package room

import (
	"net/http"

	"minihotel/infras/otel"
	"minihotel/internal/domains/room/model/dto"
	"minihotel/internal/domains/room/service"
	"minihotel/shared"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/validator"
	"minihotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/search", handler.SearchRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if !shared.IdentityFromContext(ctx).IsAdmin() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	var req dto.CreateRoomRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) SearchRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchRooms")
	defer scope.End()

	res, err := handler.service.Search(ctx, request.URL.Query().Get("q"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search rooms")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	if !shared.IdentityFromContext(ctx).IsAdmin() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	var req dto.UpdateRoomRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if !shared.IdentityFromContext(ctx).IsAdmin() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}
