package vendorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// PageShape is the pagination envelope a vendor wraps its collections in.
type PageShape int

const (
	// PlainArray: each page is a bare JSON array.  Exhausted when a page
	// holds fewer items than the page size.  (NinjaOne.)
	PlainArray PageShape = iota
	// ItemsEnvelope: {"items": [...], "nextLink": "..."}.  Exhausted when
	// nextLink is absent.  (Atera.)
	ItemsEnvelope
	// JSONAPI: {"data": [{"id", "type", "attributes": {...}}], "meta":
	// {"total-pages": N}}.  Attributes are flattened into the record.
	// (ITGlue.)
	JSONAPI
)

// Pagination describes how to walk one vendor's collections.
type Pagination struct {
	Shape    PageShape
	PageSize int
}

// pageNumberQuery defines the query parameters for the Atera-style and
// NinjaOne-style page-numbered endpoints:
// https://app.atera.com/apidocs#tag/Agents/paths/~1api~1v3~1agents/get
type pageNumberQuery struct {
	Page        int `url:"page"`
	ItemsInPage int `url:"itemsInPage"`
}

// jsonapiPageQuery defines the JSON:API-bracketed query parameters:
// https://api.itglue.com/developer/#pagination
type jsonapiPageQuery struct {
	Number int `url:"page[number]"`
	Size   int `url:"page[size]"`
}

func (p Pagination) queryValues(page int) (url.Values, error) {
	switch p.Shape {
	case JSONAPI:
		return query.Values(jsonapiPageQuery{Number: page, Size: p.PageSize})
	default:
		return query.Values(pageNumberQuery{Page: page, ItemsInPage: p.PageSize})
	}
}

// ListQuery addresses one resource collection on the vendor.
type ListQuery struct {
	// Path of the collection, e.g. /api/v3/agents.
	Path string

	// Extra filter parameters, e.g. the parent organization ID.
	Filter url.Values

	Page Pagination
}

type itemsEnvelope struct {
	Items    []Record `json:"items"`
	NextLink string   `json:"nextLink"`
}

type jsonapiEnvelope struct {
	Data []struct {
		ID         string         `json:"id"`
		Type       string         `json:"type"`
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
	Meta struct {
		TotalPages int `json:"total-pages"`
	} `json:"meta"`
}

// ListPages walks a paginated collection, calling visit for every record.  It
// holds at most one page of records at a time.  The first error — a failed
// fetch or a visit callback error — aborts the whole sequence; there is no
// partial resume.
func (api *API) ListPages(ctx context.Context, q ListQuery, visit func(Record) error) error {
	page := q.Page
	if page.PageSize < 1 {
		page.PageSize = 50
	}

	for number := 1; ; number++ {
		values, err := page.queryValues(number)
		if err != nil {
			return fmt.Errorf("vendorapi: couldn't encode query params: %w", err)
		}
		for key, filter := range q.Filter {
			values[key] = filter
		}

		ep, err := api.resolveEndpoint(q.Path)
		if err != nil {
			return fmt.Errorf("vendorapi: couldn't resolve endpoint %s: %w", q.Path, err)
		}
		ep.RawQuery = values.Encode()

		body, err := api.request(ctx, ep)
		if err != nil {
			return err
		}

		records, more, err := decodePage(page.Shape, body, page.PageSize, number)
		if err != nil {
			return fmt.Errorf("vendorapi: couldn't parse page %d of %s: %w", number, q.Path, err)
		}

		for _, record := range records {
			if err := visit(record); err != nil {
				return err
			}
		}

		if !more {
			return nil
		}
	}
}

func decodePage(shape PageShape, body []byte, pageSize, number int) ([]Record, bool, error) {
	switch shape {
	case ItemsEnvelope:
		var envelope itemsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, false, err
		}
		return envelope.Items, envelope.NextLink != "", nil

	case JSONAPI:
		var envelope jsonapiEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, false, err
		}
		records := make([]Record, 0, len(envelope.Data))
		for _, item := range envelope.Data {
			record := Record{}
			for key, value := range item.Attributes {
				record[key] = value
			}
			// id/type live outside attributes in JSON:API; fold them in.
			record["id"] = item.ID
			if item.Type != "" {
				record["type"] = item.Type
			}
			records = append(records, record)
		}
		return records, number < envelope.Meta.TotalPages, nil

	default:
		var records []Record
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, false, err
		}
		return records, len(records) == pageSize, nil
	}
}
