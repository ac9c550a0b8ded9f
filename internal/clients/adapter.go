package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// Detail tab ids.
const (
	TabOverview = "overview"
	TabContacts = "contacts"
	TabBilling  = "billing"
	TabNotes    = "notes"
)

// Adapter exposes a Fetcher as the list-detail collaborators.
type Adapter struct {
	fetcher Fetcher
}

// NewAdapter wraps f.
func NewAdapter(f Fetcher) *Adapter {
	return &Adapter{fetcher: f}
}

// LoadList implements listdetail.ListFunc.
func (a *Adapter) LoadList(ctx context.Context, params listdetail.ListViewParams) (Page, error) {
	return a.fetcher.ListClients(ctx, QueryFromParams(params))
}

// LoadDetail implements listdetail.DetailFunc.
func (a *Adapter) LoadDetail(ctx context.Context, id listdetail.EntityID) (Detail, error) {
	rec, err := a.fetcher.GetClient(ctx, string(id))
	if err != nil {
		return Detail{}, err
	}
	return BuildDetail(*rec), nil
}

// QueryFromParams maps the core's params onto the API's query string.
func QueryFromParams(params listdetail.ListViewParams) ListQuery {
	params = params.Normalize()
	return ListQuery{
		Query:   params.Query,
		Page:    params.Page,
		PerPage: params.PerPage,
		Sort:    params.SortField,
		Order:   string(params.SortDirection),
		Filters: params.Filters,
	}
}

// BuildDetail lays a record out as tabs and actions.
func BuildDetail(rec Record) Detail {
	subtitle := rec.Company
	if rec.Name == "" {
		subtitle = ""
	}
	return Detail{
		ID:        rec.EntityID(),
		Title:     rec.DisplayName(),
		Subtitle:  subtitle,
		Record:    rec,
		Tabs:      []listdetail.DetailTab{overviewTab(rec), contactsTab(rec), billingTab(rec), notesTab(rec)},
		Actions:   actions(rec),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func overviewTab(rec Record) listdetail.DetailTab {
	fields := []listdetail.DetailField{
		{Label: "Company", Value: rec.Company},
		{Label: "Email", Value: rec.Email},
		{Label: "Phone", Value: rec.Phone},
		{Label: "Status", Value: rec.Status},
		{Label: "Owner", Value: rec.Owner},
		{Label: "Address", Value: rec.Address},
		{Label: "Website", Value: rec.Website},
		{Label: "Tax ID", Value: rec.TaxID},
		{Label: "Tags", Value: strings.Join(rec.Tags, ", ")},
		{Label: "Balance", Value: FormatCents(rec.BalanceCents)},
	}
	for i := range fields {
		if fields[i].Value == "" {
			fields[i].Value = "-"
		}
	}
	return listdetail.DetailTab{
		ID:      TabOverview,
		Label:   "Overview",
		Content: listdetail.FieldsContent{Fields: fields},
	}
}

func contactsTab(rec Record) listdetail.DetailTab {
	rows := make([][]string, 0, len(rec.Contacts))
	for _, c := range rec.Contacts {
		rows = append(rows, []string{c.Name, c.Role, c.Email, c.Phone})
	}
	return listdetail.DetailTab{
		ID:    TabContacts,
		Label: fmt.Sprintf("Contacts (%d)", len(rec.Contacts)),
		Content: listdetail.TableContent{
			Columns: []string{"Name", "Role", "Email", "Phone"},
			Rows:    rows,
		},
	}
}

func billingTab(rec Record) listdetail.DetailTab {
	rows := make([][]string, 0, len(rec.Invoices))
	for _, inv := range rec.Invoices {
		rows = append(rows, []string{inv.Number, formatDate(inv.IssuedAt), FormatCents(inv.AmountCents), inv.Status})
	}
	return listdetail.DetailTab{
		ID:    TabBilling,
		Label: "Billing",
		Content: listdetail.TableContent{
			Columns: []string{"Invoice", "Issued", "Amount", "Status"},
			Rows:    rows,
		},
	}
}

func notesTab(rec Record) listdetail.DetailTab {
	return listdetail.DetailTab{
		ID:      TabNotes,
		Label:   "Notes",
		Content: listdetail.TextContent{Text: strings.TrimSpace(rec.Notes)},
	}
}

func actions(rec Record) []listdetail.DetailAction {
	archived := rec.Status == StatusArchived
	return []listdetail.DetailAction{
		{ID: "edit", Label: "Edit", Disabled: archived},
		{ID: "email", Label: "Send email", Disabled: rec.Email == ""},
		{ID: "export", Label: "Export"},
		{ID: "archive", Label: "Archive", Destructive: true, Disabled: archived},
	}
}

// FormatCents renders an amount in cents as a decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
