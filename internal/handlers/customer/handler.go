package customer

import (
	"net/http"

	"minihotel/infras/otel"
	"minihotel/internal/domains/customer/model/dto"
	"minihotel/internal/domains/customer/service"
	"minihotel/shared"
	"minihotel/shared/constant"
	"minihotel/shared/validator"
	"minihotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCustomer)
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/search", handler.SearchCustomers)
		routerGroup.Get("/{id}", handler.GetCustomerByID)
		routerGroup.Put("/{id}", handler.UpdateCustomer)
		routerGroup.Delete("/{id}", handler.DeleteCustomer)
	})
}

func (handler *Handler) CreateCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomer")
	defer scope.End()

	var req dto.CreateCustomerRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create customer")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) GetCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) SearchCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchCustomers")
	defer scope.End()

	res, err := handler.service.Search(ctx, request.URL.Query().Get("q"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search customers")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetCustomerByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerByID")
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

func (handler *Handler) UpdateCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCustomer")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	var req dto.UpdateCustomerRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update customer")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) DeleteCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCustomer")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete customer")
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Customer deleted successfully")
}
