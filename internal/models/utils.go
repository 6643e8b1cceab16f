package models

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given boolean.
func BoolPtr(b bool) *bool {
	return &b
}

// ClampPage normalizes a page/limit pair against the total row count.
// Pages past the end collapse onto the last page, mirroring how the
// listing endpoints behave. Returns the effective page, the row offset
// and the number of pages.
func ClampPage(page, limit int, count int64) (current, offset, totalPages int) {
	if limit <= 0 {
		limit = 1
	}
	totalPages = int((count + int64(limit) - 1) / int64(limit))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	offset = (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return page, offset, totalPages
}
