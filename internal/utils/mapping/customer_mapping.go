package mapping

import (
	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:     d.CustomerID,
		Name:           d.Name,
		Identification: d.Identification,
		Gender:         d.Gender,
		Address:        d.Address,
		Phone:          d.Phone,
		IsActive:       d.Active,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:     m.CustomerID,
		Name:           m.Name,
		Identification: m.Identification,
		Gender:         m.Gender,
		Address:        m.Address,
		Phone:          m.Phone,
		Active:         m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
