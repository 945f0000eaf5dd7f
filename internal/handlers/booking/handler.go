package booking

import (
	"context"
	"net/http"

	"minihotel/infras/otel"
	"minihotel/internal/domains/booking/model/dto"
	"minihotel/internal/domains/booking/service"
	"minihotel/shared"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/validator"
	"minihotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/availability", handler.GetAvailableRooms)
		routerGroup.Get("/report", handler.GetBookingsByDateRange)
		routerGroup.Get("/customer/{id}", handler.GetBookingsByCustomer)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	identity := shared.IdentityFromContext(ctx)
	if !identity.IsAdmin() && req.CustomerID != identity.CustomerID() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists every booking for the back office; a customer caller
// only sees their own history.
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	identity := shared.IdentityFromContext(ctx)
	if !identity.IsAdmin() {
		res, err := handler.service.ByCustomer(ctx, identity.CustomerID())
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		response.WithJSON(writer, http.StatusOK, res)

		return
	}

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailableRooms answers the pre-booking availability query. The stay is
// carried in query parameters because the endpoint is a read.
func (handler *Handler) GetAvailableRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	req := dto.AvailabilityRequest{
		CheckIn:  request.URL.Query().Get("check_in"),
		CheckOut: request.URL.Query().Get("check_out"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AvailableRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list available rooms")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetBookingsByDateRange(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByDateRange")
	defer scope.End()

	if !shared.IdentityFromContext(ctx).IsAdmin() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	req := dto.AvailabilityRequest{
		CheckIn:  request.URL.Query().Get("check_in"),
		CheckOut: request.URL.Query().Get("check_out"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ByDateRange(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to report bookings")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetBookingsByCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByCustomer")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	identity := shared.IdentityFromContext(ctx)
	if !identity.IsAdmin() && id != identity.CustomerID() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	res, err := handler.service.ByCustomer(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
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

	identity := shared.IdentityFromContext(ctx)
	if !identity.IsAdmin() && res.CustomerID != identity.CustomerID() {
		response.WithError(writer, failure.ForbiddenError)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	var req dto.UpdateBookingRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.authorizeOwner(ctx, id, req.CustomerID); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	identity := shared.IdentityFromContext(ctx)
	if err := handler.authorizeOwner(ctx, id, identity.CustomerID()); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

// authorizeOwner lets mutations through for the back office, and for a
// customer only when the booking belongs to them and stays theirs.
func (handler *Handler) authorizeOwner(ctx context.Context, bookingID, requestedCustomerID int64) error {
	identity := shared.IdentityFromContext(ctx)
	if identity.IsAdmin() {
		return nil
	}

	if requestedCustomerID != identity.CustomerID() {
		return failure.ForbiddenError
	}

	current, err := handler.service.Get(ctx, bookingID)
	if err != nil {
		return err
	}

	if current.CustomerID != identity.CustomerID() {
		return failure.ForbiddenError
	}

	return nil
}
