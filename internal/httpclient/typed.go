package httpclient

import (
	"context"
	"net/http"
	"net/url"
)

// Doer is the envelope-level contract of Client, narrowed for the
// request modules so they can be tested against a mock.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Get issues a GET and decodes the envelope data into T.
func Get[T any](ctx context.Context, d Doer, path string, query url.Values) (T, error) {
	var out T
	err := d.Do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

// Post issues a POST with body and decodes the envelope data into T.
func Post[T any](ctx context.Context, d Doer, path string, body any) (T, error) {
	var out T
	err := d.Do(ctx, http.MethodPost, path, nil, body, &out)
	return out, err
}

// Delete issues a DELETE and ignores any data.
func Delete(ctx context.Context, d Doer, path string) error {
	return d.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}
