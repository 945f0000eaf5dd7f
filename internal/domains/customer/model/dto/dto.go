package dto

import (
	"time"

	"minihotel/internal/domains/customer/model"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
)

type CreateCustomerRequest struct {
	FullName  string `json:"full_name" validate:"required,max=50"`
	Telephone string `json:"telephone" validate:"required,max=12"`
	Email     string `json:"email"     validate:"required,email,max=50"`
	Birthday  string `json:"birthday"  validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password"  validate:"required,min=8,max=50"`
}

// ToModel maps the request onto a new active customer. The password is
// replaced by its hash before the record leaves the service.
func (c *CreateCustomerRequest) ToModel(hashedPassword string) (model.Customer, error) {
	birthday, err := parseBirthday(c.Birthday)
	if err != nil {
		return model.Customer{}, err
	}

	return model.Customer{
		FullName:  c.FullName,
		Telephone: c.Telephone,
		Email:     c.Email,
		Birthday:  birthday,
		Password:  hashedPassword,
		Status:    model.StatusActive,
	}, nil
}

type UpdateCustomerRequest struct {
	FullName  string `json:"full_name" validate:"required,max=50"`
	Telephone string `json:"telephone" validate:"required,max=12"`
	Email     string `json:"email"     validate:"required,email,max=50"`
	Birthday  string `json:"birthday"  validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password"  validate:"omitempty,min=8,max=50"`
}

// ApplyTo rewrites the mutable fields of an existing record. An empty
// password keeps the stored hash.
func (u *UpdateCustomerRequest) ApplyTo(customer model.Customer, hashedPassword string) (model.Customer, error) {
	birthday, err := parseBirthday(u.Birthday)
	if err != nil {
		return model.Customer{}, err
	}

	customer.FullName = u.FullName
	customer.Telephone = u.Telephone
	customer.Email = u.Email
	customer.Birthday = birthday

	if hashedPassword != "" {
		customer.Password = hashedPassword
	}

	return customer, nil
}

func parseBirthday(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	birthday, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return nil, failure.Validation("Birthday must use the format 2006-01-02")
	}

	return &birthday, nil
}

type CustomerResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Birthday  string `json:"birthday,omitempty"`
}

func (r *CustomerResponse) FromModel(customer model.Customer) {
	r.ID = customer.ID
	r.FullName = customer.FullName
	r.Telephone = customer.Telephone
	r.Email = customer.Email

	if customer.Birthday != nil {
		r.Birthday = customer.Birthday.Format(constant.DateFormat)
	}
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(customers []model.Customer) {
	r.TotalData = len(customers)

	r.Customers = make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		r.Customers[i].FromModel(customer)
	}
}
