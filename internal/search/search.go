// Package search defines the contracts of the external lookup services used by the
// validation steps: a postal-code/address search and a property-category lookup.
package search

import (
	"context"
	"time"
)

// ResponseStatus classifies the outcome of an external lookup
type ResponseStatus string

const (
	StatusOK              ResponseStatus = "OK"
	StatusNotFound        ResponseStatus = "NOT_FOUND"
	StatusError           ResponseStatus = "ERROR"
	StatusTimeout         ResponseStatus = "TIMEOUT"
	StatusInvalidResponse ResponseStatus = "INVALID_RESPONSE"
	StatusRateLimited     ResponseStatus = "RATE_LIMITED"
)

// Transient reports whether a lookup with this status is worth retrying
func (s ResponseStatus) Transient() bool {
	switch s {
	case StatusRateLimited, StatusError, StatusTimeout:
		return true
	}
	return false
}

// NilBlock is the provider sentinel for "no block number"
const NilBlock = "NIL"

// PostalRecord is one postal-code/address search hit mapped to canonical field names
type PostalRecord struct {
	BlockNumber  string `json:"block_number"`
	StreetName   string `json:"street_name"`
	PostalCode   string `json:"postal_code"`
	BuildingName string `json:"building_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Latitude     string `json:"latitude,omitempty"`
	Longitude    string `json:"longitude,omitempty"`
}

// PostalResult is the response of a postal-code/address search
type PostalResult struct {
	Query     string         `json:"query"`
	Status    ResponseStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Records   []PostalRecord `json:"records"`
}

// NewPostalResult builds a result, dropping the payload unless status is OK and
// reclassifying an OK response with no records as NOT_FOUND.
func NewPostalResult(query string, records []PostalRecord, status ResponseStatus) *PostalResult {
	res := &PostalResult{Query: query, Status: status, Timestamp: time.Now().UTC(), Records: []PostalRecord{}}
	if status != StatusOK {
		return res
	}
	if len(records) == 0 {
		res.Status = StatusNotFound
		return res
	}
	res.Records = records
	return res
}

// PostalCodes returns the postal code of every record, in order
func (r *PostalResult) PostalCodes() []string {
	codes := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		codes = append(codes, rec.PostalCode)
	}
	return codes
}

// BlockNumbers returns the block number of every record, in order
func (r *PostalResult) BlockNumbers() []string {
	blocks := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		blocks = append(blocks, rec.BlockNumber)
	}
	return blocks
}

// CategoryItem is an (address, category) pair. Address is empty when the listing had none.
type CategoryItem struct {
	Address  string `json:"address,omitempty"`
	Category string `json:"category"`
}

// CategoryResult is the response of a property-category lookup
type CategoryResult struct {
	Query     string         `json:"query"`
	Status    ResponseStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Items     []CategoryItem `json:"items"`
}

// NewCategoryResult builds a result; an OK response with no items becomes NOT_FOUND
func NewCategoryResult(query string, items []CategoryItem, status ResponseStatus) *CategoryResult {
	res := &CategoryResult{Query: query, Status: status, Timestamp: time.Now().UTC(), Items: []CategoryItem{}}
	if status == StatusOK && len(items) > 0 {
		res.Items = items
		return res
	}
	if status == StatusOK {
		res.Status = StatusNotFound
	}
	return res
}

// PostalSearcher looks up addresses by postal code or free text
type PostalSearcher interface {
	Search(ctx context.Context, query string) *PostalResult
}

// CategorySearcher looks up property categories for an address.
// A limit of 0 returns every listing on the results page.
type CategorySearcher interface {
	Search(ctx context.Context, query, country string, state, limit int) *CategoryResult
}

// PostalSearcherFunc adapts a function to PostalSearcher
type PostalSearcherFunc func(ctx context.Context, query string) *PostalResult

// Search calls f
func (f PostalSearcherFunc) Search(ctx context.Context, query string) *PostalResult {
	return f(ctx, query)
}

// CategorySearcherFunc adapts a function to CategorySearcher
type CategorySearcherFunc func(ctx context.Context, query, country string, state, limit int) *CategoryResult

// Search calls f
func (f CategorySearcherFunc) Search(ctx context.Context, query, country string, state, limit int) *CategoryResult {
	return f(ctx, query, country, state, limit)
}
