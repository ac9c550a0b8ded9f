package clients

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// Client status values understood by the API's status filter.
const (
	StatusActive   = "active"
	StatusLead     = "lead"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

// StatusFilters is the cycle order used by the UI's status filter.
var StatusFilters = []string{"", StatusActive, StatusLead, StatusInactive, StatusArchived}

// SortFields lists the columns the API can sort by.
var SortFields = []string{"name", "company", "updated_at", "balance"}

// Summary is one row of /api/clients.
type Summary struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Company      string    `json:"company" yaml:"company"`
	Email        string    `json:"email" yaml:"email"`
	Phone        string    `json:"phone" yaml:"phone"`
	Status       string    `json:"status" yaml:"status"`
	Owner        string    `json:"owner" yaml:"owner"`
	BalanceCents int64     `json:"balance_cents" yaml:"balance_cents"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// EntityID implements listdetail.Entity.
func (s Summary) EntityID() listdetail.EntityID {
	return listdetail.EntityID(s.ID)
}

// DisplayName prefers the person's name and falls back to the company.
func (s Summary) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Company != "" {
		return s.Company
	}
	return "client " + s.ID
}

// Page is the decoded /api/clients response.
type Page = listdetail.ListViewResponse[Summary]

// Contact is a person attached to a client.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// Invoice is one billing entry.
type Invoice struct {
	Number      string    `json:"number" yaml:"number"`
	IssuedAt    time.Time `json:"issued_at" yaml:"issued_at"`
	AmountCents int64     `json:"amount_cents" yaml:"amount_cents"`
	Status      string    `json:"status" yaml:"status"`
}

// Record mirrors /api/clients/:id.
type Record struct {
	Summary `yaml:",inline"`

	Address   string    `json:"address" yaml:"address"`
	Website   string    `json:"website" yaml:"website"`
	TaxID     string    `json:"tax_id" yaml:"tax_id"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Contacts  []Contact `json:"contacts" yaml:"contacts"`
	Invoices  []Invoice `json:"invoices" yaml:"invoices"`
	Notes     string    `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Detail is the core's detail payload for a client.
type Detail = listdetail.DetailViewData[Record]
