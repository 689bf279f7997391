package customerdirectory

import (
	"context"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/account_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
)

// LocalDirectory resolves customers from this service's own customer registry.
type LocalDirectory struct {
	customers portsrepo.CustomerReader
}

// NewLocalDirectory wraps a customer reader.
func NewLocalDirectory(customers portsrepo.CustomerReader) *LocalDirectory {
	return &LocalDirectory{customers: customers}
}

var _ portssvc.CustomerDirectory = (*LocalDirectory)(nil)

func (d *LocalDirectory) GetCustomer(ctx context.Context, customerID string) (*domain.CustomerInfo, error) {
	c, err := d.customers.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &domain.CustomerInfo{CustomerID: c.CustomerID, Name: c.Name}, nil
}
