package dto

import (
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name           string `json:"name" binding:"required"`
	Identification string `json:"identification" binding:"required"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
}

// UpdateCustomerRequest defines the editable customer fields.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

// CustomerResponse is also the payload the customer directory client expects
// from a remote customer service.
type CustomerResponse struct {
	CustomerID     string    `json:"customerID"`
	Name           string    `json:"name"`
	Identification string    `json:"identification,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:     c.CustomerID,
		Name:           c.Name,
		Identification: c.Identification,
		Gender:         c.Gender,
		Address:        c.Address,
		Phone:          c.Phone,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
