package services

import (
	"context"

	"tiffin/internal/models/db_models"
	"tiffin/internal/models/request_models"
	"tiffin/internal/models/response_models"
	"tiffin/internal/repositories"
	"tiffin/pkg/utils"
)

type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, req request_models.CreateCustomerRequest) (*response_models.CustomerResponse, error)
	GetCustomerById(ctx context.Context, id string) (*response_models.CustomerResponse, error)
	ListCustomers(ctx context.Context, page int, pageSize int) (*response_models.CustomerListResponse, error)
	UpdateCustomer(ctx context.Context, id string, req request_models.UpdateCustomerRequest) (*response_models.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type CustomerService struct {
	customerRepo repositories.ICustomerRepository
}

func NewCustomerService(customerRepo repositories.ICustomerRepository) CustomerServiceInterface {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req request_models.CreateCustomerRequest) (*response_models.CustomerResponse, error) {

	existing, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	customer := &db_models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  db_models.CustomerActive,
	}
	if err := s.customerRepo.Insert(ctx, customer); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildCustomerResponse(customer)
	return &out, nil
}

func (s *CustomerService) GetCustomerById(ctx context.Context, id string) (*response_models.CustomerResponse, error) {
	customer, err := s.customerRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}

	out := response_models.BuildCustomerResponse(customer)
	return &out, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, page int, pageSize int) (*response_models.CustomerListResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	customers, total, err := s.customerRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := &response_models.CustomerListResponse{
		Customers: make([]response_models.CustomerResponse, 0, len(customers)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
	for i := range customers {
		out.Customers = append(out.Customers, response_models.BuildCustomerResponse(&customers[i]))
	}
	return out, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req request_models.UpdateCustomerRequest) (*response_models.CustomerResponse, error) {
	customer, err := s.customerRepo.GetById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if customer == nil {
		return nil, utils.ErrCustomerNotFound
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Status != nil {
		customer.Status = db_models.CustomerStatus(*req.Status)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildCustomerResponse(customer)
	return &out, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := s.customerRepo.GetById(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if customer == nil {
		return utils.ErrCustomerNotFound
	}

	if err := s.customerRepo.SoftDelete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
