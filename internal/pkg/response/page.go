package response

// PageResponse wraps paginated list results for booking, ground and user
// endpoints.
type PageResponse[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// NewPageResponse builds a page wrapper around items.
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	// A nil slice would serialize as JSON null; clients expect an array.
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}
