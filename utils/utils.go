package utils

// Pagination represents the pagination details of a list response.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// NormalizePageParams clamps raw query parameters to sane values. Page
// sizes above 100 fall back to the default rather than the cap, so a
// client asking for everything still gets a normal page.
func NormalizePageParams(page, pageSize, defaultSize int) (normalizedPage, normalizedSize, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}
