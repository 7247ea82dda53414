package api

import (
	"context"
	"strconv"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// AdminAPI maps the admin-only endpoints.
type AdminAPI struct {
	doer httpclient.Doer
}

// NewAdminAPI returns an AdminAPI sending through d.
func NewAdminAPI(d httpclient.Doer) *AdminAPI {
	return &AdminAPI{doer: d}
}

// Users returns one page of member accounts matching the filter.
func (a *AdminAPI) Users(ctx context.Context, filter models.UserFilter) (models.Paged[models.User], error) {
	q := filter.PageQuery.Values()
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*filter.IsActive))
	}
	return httpclient.Get[models.Paged[models.User]](ctx, a.doer, "Admin/users", q)
}
