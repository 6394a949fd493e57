package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/authz"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo crm.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo crm.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, actor authz.Actor, req CreateClientRequest) (*ClientResponse, error) {
	if !actor.Can(authz.ResourceClients, authz.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	exists, err := s.clientRepo.ExistsByCompanyName(ctx, req.CompanyName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this company name already exists")
	}

	client, err := crm.NewClient(req.CompanyName, req.ContactPerson)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" || req.Address != "" || req.City != "" || req.Country != "" || req.TaxID != "" {
		if err := client.Update(req.CompanyName, req.ContactPerson, req.Email, req.Phone,
			req.Address, req.City, req.Country, req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.AccountManager != nil {
		if err := client.SetAccountManager(*req.AccountManager); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, actor authz.Actor, clientID uuid.UUID) (*ClientResponse, error) {
	if !actor.Can(authz.ResourceClients, authz.ActionRead) {
		return nil, shared.ErrForbidden
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients matching the filter
func (s *ClientService) List(ctx context.Context, actor authz.Actor, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if !actor.Can(authz.ResourceClients, authz.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	f := crm.ClientFilter{Filter: shared.DefaultFilter()}
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
		f.OrderDir = filter.OrderDir
	}
	if filter.Country != "" {
		country := filter.Country
		f.Country = &country
	}
	if filter.AccountManager != nil {
		f.AccountManager = filter.AccountManager
	}

	clients, err := s.clientRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses, total, nil
}

// Update updates a client's details
func (s *ClientService) Update(ctx context.Context, actor authz.Actor, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	if !actor.Can(authz.ResourceClients, authz.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	companyName := client.CompanyName
	contactPerson := client.ContactPerson
	email := client.Email
	phone := client.Phone
	address := client.Address
	city := client.City
	country := client.Country
	taxID := client.TaxID

	if req.CompanyName != nil && *req.CompanyName != client.CompanyName {
		exists, err := s.clientRepo.ExistsByCompanyName(ctx, *req.CompanyName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this company name already exists")
		}
		companyName = *req.CompanyName
	}
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.City != nil {
		city = *req.City
	}
	if req.Country != nil {
		country = *req.Country
	}
	if req.TaxID != nil {
		taxID = *req.TaxID
	}

	if err := client.Update(companyName, contactPerson, email, phone, address, city, country, taxID); err != nil {
		return nil, err
	}

	if req.AccountManager != nil {
		if err := client.SetAccountManager(*req.AccountManager); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete deletes a client
func (s *ClientService) Delete(ctx context.Context, actor authz.Actor, clientID uuid.UUID) error {
	if !actor.Can(authz.ResourceClients, authz.ActionDelete) {
		return shared.ErrForbidden
	}
	return s.clientRepo.Delete(ctx, clientID)
}
