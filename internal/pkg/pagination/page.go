// Package pagination normalizes cursor based page requests
package pagination

// PageSizeConfig configures page size normalization
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// Window returns the half-open range [start, end) of a page over total
// items. A cursor at or past the end yields an empty range at total.
func Window(cursor, pageSize, total int) (start, end int) {
	start = min(max(cursor, 0), total)
	end = min(start+pageSize, total)
	return start, end
}
