package service

import (
	"context"
	"strings"

	"minihotel/infras/otel"
	"minihotel/internal/domains/customer/model"
	"minihotel/internal/domains/customer/model/dto"
	"minihotel/internal/store"
	"minihotel/shared/constant"
	"minihotel/shared/password"
)

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id int64) (dto.CustomerResponse, error)
	Search(ctx context.Context, keyword string) (dto.GetCustomersResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	customers *store.Cache[model.Customer]
	otel      otel.Otel
}

func New(customers *store.Cache[model.Customer], otl otel.Otel) Customer {
	return &serviceImpl{
		customers: customers,
		otel:      otl,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return res, err
	}

	customer, err := req.ToModel(hashed)
	if err != nil {
		return res, err
	}

	created, err := s.customers.Add(ctx, customer)
	if err != nil {
		return res, err
	}

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	customers, err := s.customers.GetAll(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(customers)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(customer)

	return res, nil
}

// Search matches the keyword against name and email, case-insensitively,
// among active customers only.
func (s *serviceImpl) Search(ctx context.Context, keyword string) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	needle := strings.ToLower(keyword)

	customers, err := s.customers.Search(ctx, func(customer model.Customer) bool {
		if !customer.Active() {
			return false
		}

		return strings.Contains(strings.ToLower(customer.FullName), needle) ||
			strings.Contains(strings.ToLower(customer.Email), needle)
	})
	if err != nil {
		return res, err
	}

	res.FromModels(customers)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return res, err
	}

	hashed := constant.Empty
	if req.Password != constant.Empty {
		if hashed, err = password.Hash(req.Password); err != nil {
			return res, err
		}
	}

	changed, err := req.ApplyTo(current, hashed)
	if err != nil {
		return res, err
	}

	updated, err := s.customers.Update(ctx, changed)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.customers.Delete(ctx, id)
}
