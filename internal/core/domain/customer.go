package domain

import "time"

// Customer is an account holder as known to this service.
type Customer struct {
	CustomerID     string `json:"customerID"`
	Name           string `json:"name"`
	Identification string `json:"identification"` // National id or equivalent, unique
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Active         bool   `json:"active"`
	AuditFields
}

// CustomerInfo is the display identity resolved through the customer directory.
type CustomerInfo struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
}

// CustomerEventType names a customer lifecycle change.
type CustomerEventType string

const (
	CustomerCreated CustomerEventType = "CREATED"
	CustomerUpdated CustomerEventType = "UPDATED"
	CustomerDeleted CustomerEventType = "DELETED"
)

// CustomerEvent is the audit notification emitted after a customer mutation commits.
type CustomerEvent struct {
	EventType  CustomerEventType `json:"eventType"`
	CustomerID string            `json:"customerId"`
	RelatedID  string            `json:"relatedId"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewCustomerEvent builds an event for c stamped with at.
func NewCustomerEvent(eventType CustomerEventType, c Customer, at time.Time) CustomerEvent {
	return CustomerEvent{
		EventType:  eventType,
		CustomerID: c.CustomerID,
		RelatedID:  c.Identification,
		Timestamp:  at.UTC(),
	}
}
