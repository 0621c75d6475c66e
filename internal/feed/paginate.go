package feed

// Paginate returns the 1-based page of items. Pages beyond the end yield an
// empty slice, never an error.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages never reports fewer than one page, so an empty list still renders
// as page 1 of 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 1
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
