// file: internals/features/library/books/service/catalog_client.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pustakaedu_backend/internals/helpers/errs"
)

// CatalogBook — subset field katalog yang dipakai entitlement.
type CatalogBook struct {
	ID                 string           `json:"_id"`
	Name               string           `json:"name"`
	Subject            string           `json:"subject"`
	IsPublic           bool             `json:"isPublic"`
	Price              int64            `json:"price"`
	SubscriptionPrices map[string]int64 `json:"subscriptionPrices"`
}

// CatalogClient mengambil entri buku dari sumber konten eksternal.
type CatalogClient interface {
	FetchBook(ctx context.Context, sanityID string) (*CatalogBook, error)
}

// SanityCatalogClient — implementasi HTTP ke Sanity query API (GROQ).
type SanityCatalogClient struct {
	ProjectID string
	Dataset   string
	HTTP      *http.Client
}

func NewSanityCatalogClient(projectID, dataset string) *SanityCatalogClient {
	return &SanityCatalogClient{
		ProjectID: projectID,
		Dataset:   dataset,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SanityCatalogClient) FetchBook(ctx context.Context, sanityID string) (*CatalogBook, error) {
	query := fmt.Sprintf(`*[_id == %q][0]{_id, name, subject, isPublic, price, subscriptionPrices}`, sanityID)
	endpoint := fmt.Sprintf(
		"https://%s.api.sanity.io/v2023-01-01/data/query/%s?query=%s",
		c.ProjectID, c.Dataset, url.QueryEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sanity query: %v", errs.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sanity status %d", errs.ErrExternalService, resp.StatusCode)
	}

	var payload struct {
		Result *CatalogBook `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: sanity decode: %v", errs.ErrExternalService, err)
	}
	if payload.Result == nil || payload.Result.ID == "" {
		return nil, errs.ErrNotFound
	}
	return payload.Result, nil
}
