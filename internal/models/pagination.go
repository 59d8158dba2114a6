package models

import "strconv"

// ItemsPerPage is the fixed page size of the invoices listing
const ItemsPerPage = 6

// PaginationResult holds pagination metadata
type PaginationResult struct {
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
	Pages      []string `json:"pages"`
}

// NewPaginationResult creates a pagination result
func NewPaginationResult(page, pageSize int, totalCount int64) PaginationResult {
	totalPages := TotalPages(totalCount, pageSize)

	return PaginationResult{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		Pages:      GeneratePagination(page, totalPages),
	}
}

// TotalPages returns the number of pages needed to show totalCount rows
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = ItemsPerPage
	}
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}
	return totalPages
}

// CalculateOffset calculates the SQL offset for pagination
func CalculateOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// PaginationEllipsis marks a gap in a generated page list
const PaginationEllipsis = "..."

// GeneratePagination returns the page labels to render for the current page.
// Up to seven pages are listed in full; beyond that, gaps collapse into "...".
func GeneratePagination(currentPage, totalPages int) []string {
	if totalPages <= 0 {
		return []string{}
	}

	if totalPages <= 7 {
		return pageRange(1, totalPages)
	}

	label := strconv.Itoa
	switch {
	case currentPage <= 3:
		return []string{"1", "2", "3", PaginationEllipsis, label(totalPages - 1), label(totalPages)}
	case currentPage >= totalPages-2:
		return []string{"1", "2", PaginationEllipsis, label(totalPages - 2), label(totalPages - 1), label(totalPages)}
	default:
		return []string{
			"1",
			PaginationEllipsis,
			label(currentPage - 1),
			label(currentPage),
			label(currentPage + 1),
			PaginationEllipsis,
			label(totalPages),
		}
	}
}

func pageRange(from, to int) []string {
	pages := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		pages = append(pages, strconv.Itoa(i))
	}
	return pages
}
