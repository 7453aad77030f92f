package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/config"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/pkg/clients"
)

// Client talks to the remote ledger API. All calls are issued serially with a
// fixed pause between batch chunks to stay under the upstream rate limit.
type Client struct {
	url       string
	token     string
	version   string
	client    clients.HTTPClientI
	pageSize  int
	batchSize int
	pause     time.Duration
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:       cfg.LedgerAddress,
		token:     cfg.LedgerToken,
		version:   cfg.LedgerVersion,
		client:    client,
		pageSize:  cfg.PageSize,
		batchSize: cfg.BatchSize,
		pause:     cfg.BatchPause,
	}
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.token)
	h.Set("Ledger-Version", c.version)
	h.Set("Content-Type", "application/json")
	return h
}

func (c *Client) post(url string, req any, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("can't marshal request: %w", err)
	}

	status, respBody, _, err := c.client.Post(url, c.headers(), body)
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &RemoteError{StatusCode: status, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, resp); err != nil {
		return fmt.Errorf("can't parse response body: %w", err)
	}
	return nil
}

func (c *Client) get(url string, resp any) error {
	status, respBody, _, err := c.client.Get(url, c.headers())
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &RemoteError{StatusCode: status, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, resp); err != nil {
		return fmt.Errorf("can't parse response body: %w", err)
	}
	return nil
}

// ListTransactions returns every transaction updated inside [begin, end),
// ascending by update time, following the continuation cursor until the
// ledger stops returning one.
func (c *Client) ListTransactions(ctx context.Context, begin, end time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	cursor := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := searchRequest{
			BeginTime: begin.UTC().Format(time.RFC3339),
			EndTime:   end.UTC().Format(time.RFC3339),
			SortOrder: "ASC",
			Limit:     c.pageSize,
			Cursor:    cursor,
		}
		var resp searchResponse
		if err := c.post(c.url+"/v1/payments/search", req, &resp); err != nil {
			return nil, fmt.Errorf("can't list transactions: %w", err)
		}

		for _, p := range resp.Payments {
			out = append(out, p.toDomain())
		}

		if resp.Cursor == "" {
			return out, nil
		}
		cursor = resp.Cursor
		c.sleep(ctx)
	}
}

// BatchOrders fetches orders by id in chunks of at most batchSize.
func (c *Client) BatchOrders(ctx context.Context, ids []string) (map[string]domain.Order, error) {
	out := make(map[string]domain.Order, len(ids))

	for _, chunk := range chunked(ids, c.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var resp ordersResponse
		if err := c.post(c.url+"/v1/orders/batch-retrieve", ordersRequest{OrderIDs: chunk}, &resp); err != nil {
			return nil, fmt.Errorf("can't batch fetch orders: %w", err)
		}
		for _, o := range resp.Orders {
			out[o.ID] = o.toDomain()
		}
		c.sleep(ctx)
	}
	return out, nil
}

// BatchCatalog resolves sellable variation ids to item name and category.
// The ledger returns variations plus related parent item objects; the parent
// carries the display name and the product type.
func (c *Client) BatchCatalog(ctx context.Context, ids []string) (map[string]domain.CatalogEntry, error) {
	out := make(map[string]domain.CatalogEntry, len(ids))

	for _, chunk := range chunked(ids, c.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := catalogRequest{ObjectIDs: chunk, IncludeRelatedObjects: true}
		var resp catalogResponse
		if err := c.post(c.url+"/v1/catalog/batch-retrieve", req, &resp); err != nil {
			return nil, fmt.Errorf("can't batch fetch catalog: %w", err)
		}

		items := make(map[string]wireCatalogObject, len(resp.RelatedObjects))
		for _, rel := range resp.RelatedObjects {
			if rel.Type == "ITEM" {
				items[rel.ID] = rel
			}
		}

		for _, obj := range resp.Objects {
			if obj.Type != "ITEM_VARIATION" {
				continue
			}
			entry := domain.CatalogEntry{VariationID: obj.ID, Category: domain.CategoryProduct}
			if item, ok := items[obj.VariationData.ItemID]; ok {
				entry.ItemName = item.ItemData.Name
				if item.ItemData.ProductType == appointmentsServiceType {
					entry.Category = domain.CategoryService
				}
			}
			out[obj.ID] = entry
		}
		c.sleep(ctx)
	}
	return out, nil
}

// BatchCustomers resolves customer ids to display names.
func (c *Client) BatchCustomers(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))

	for _, chunk := range chunked(ids, c.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var resp customersResponse
		if err := c.post(c.url+"/v1/customers/batch-retrieve", customersRequest{CustomerIDs: chunk}, &resp); err != nil {
			return nil, fmt.Errorf("can't batch fetch customers: %w", err)
		}
		for _, cust := range resp.Customers {
			out[cust.ID] = joinName(cust.GivenName, cust.FamilyName)
		}
		c.sleep(ctx)
	}
	return out, nil
}

// GetTeamMember returns the display name of one staff member.
func (c *Client) GetTeamMember(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var resp teamMemberResponse
	if err := c.get(c.url+"/v1/team-members/"+url.PathEscape(id), &resp); err != nil {
		return "", fmt.Errorf("can't fetch team member %s: %w", id, err)
	}

	tm := resp.TeamMember
	if tm.DisplayName != "" {
		return tm.DisplayName, nil
	}
	return joinName(tm.GivenName, tm.FamilyName), nil
}

// GetBooking returns one booking with its staff attribution.
func (c *Client) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp bookingResponse
	if err := c.get(c.url+"/v1/bookings/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("can't fetch booking %s: %w", id, err)
	}

	return &domain.Booking{
		ID:      resp.Booking.ID,
		StaffID: resp.Booking.TeamMemberID,
		StartAt: parseTime(resp.Booking.StartAt),
	}, nil
}

func (c *Client) sleep(ctx context.Context) {
	if c.pause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.pause):
	}
}

func chunked(ids []string, size int) [][]string {
	if size <= 0 {
		size = 100
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
