package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a company that has become a paying customer.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseAggregateRoot
	CompanyName    string
	ContactPerson  string
	Email          string
	Phone          string
	Address        string
	City           string
	Country        string
	TaxID          string
	AccountManager *uuid.UUID
}

// NewClient creates a new client
func NewClient(companyName, contactPerson string) (*Client, error) {
	companyName = strings.TrimSpace(companyName)
	contactPerson = strings.TrimSpace(contactPerson)

	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if contactPerson == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot be empty")
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
		ContactPerson:     contactPerson,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update updates the client's contact and address details
func (c *Client) Update(companyName, contactPerson, email, phone, address, city, country, taxID string) error {
	companyName = strings.TrimSpace(companyName)
	contactPerson = strings.TrimSpace(contactPerson)

	if companyName == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if contactPerson == "" {
		return shared.NewDomainError("INVALID_CONTACT_PERSON", "Contact person cannot be empty")
	}

	c.CompanyName = companyName
	c.ContactPerson = contactPerson
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.City = strings.TrimSpace(city)
	c.Country = strings.TrimSpace(country)
	c.TaxID = strings.TrimSpace(taxID)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAccountManager assigns the account manager for this client
func (c *Client) SetAccountManager(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT_MANAGER", "Account manager ID cannot be empty")
	}

	c.AccountManager = &userID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
