package helpers

import "ev-marketplace/internal/models"

// UsersQuery is the query string of GET Admin/users.
type UsersQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Search   string `form:"search"`
	IsActive *bool  `form:"isActive"`
}

// Filter converts the query into the service filter.
func (q UsersQuery) Filter() models.UserFilter {
	return models.UserFilter{
		PageQuery: models.PageQuery{Page: q.Page, PageSize: q.PageSize},
		Search:    q.Search,
		IsActive:  q.IsActive,
	}
}
