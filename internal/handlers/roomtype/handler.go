package roomtype

import (
	"net/http"

	"minihotel/infras/otel"
	"minihotel/internal/domains/roomtype/service"
	"minihotel/shared"
	"minihotel/shared/constant"
	"minihotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router exposes only reads. The collection is reference data; POST, PUT and
// DELETE are not routed at all, matching the unsupported-operation policy.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Get("/{id}", handler.GetRoomTypeByID)
	})
}

func (handler *Handler) GetRoomTypes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetRoomTypeByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypeByID")
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
