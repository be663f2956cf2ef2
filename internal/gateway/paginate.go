package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// maxPageSize is the largest page the API serves.
const maxPageSize = 100

// paginate walks a page-numbered listing endpoint from page 1 and
// materializes the raw items. Stopping conditions, checked in order:
// the accumulated count reached the cap, the endpoint returned an empty
// page, or the endpoint returned fewer items than requested. The walk
// always starts fresh; it is not restartable.
//
// When wrapped is true the endpoint envelopes its page in a search
// payload and items are read from its "items" field.
func (g *Gateway) paginate(ctx context.Context, path string, params url.Values, pageSize, limit int, wrapped bool) ([]json.RawMessage, error) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var items []json.RawMessage
	for page := 1; len(items) < limit; page++ {
		want := pageSize
		if remaining := limit - len(items); remaining < want {
			want = remaining
		}

		q := url.Values{}
		for k, vs := range params {
			q[k] = vs
		}
		q.Set("per_page", strconv.Itoa(want))
		q.Set("page", strconv.Itoa(page))

		body, err := g.get(ctx, path, q)
		if err != nil {
			return nil, err
		}

		var pageItems []json.RawMessage
		if wrapped {
			var envelope searchPayload
			if err := json.Unmarshal(body, &envelope); err != nil {
				return nil, fmt.Errorf("decode page %d of %s: %w", page, path, err)
			}
			pageItems = envelope.Items
		} else {
			if err := json.Unmarshal(body, &pageItems); err != nil {
				return nil, fmt.Errorf("decode page %d of %s: %w", page, path, err)
			}
		}

		if len(pageItems) == 0 {
			break
		}
		items = append(items, pageItems...)
		if len(pageItems) < want {
			break
		}
	}
	return items, nil
}
