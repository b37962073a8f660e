package tickets

// PageCount is ceil(n/size) with a minimum of one page.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Slice returns page (1-based) of items, clipped to the bounds of items.
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ClampPage keeps a cursor inside [1, PageCount(n, size)].
func ClampPage(page, n, size int) int {
	count := PageCount(n, size)
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// PageLink is one entry of the pager. Ellipsis entries carry no page.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Controls describes the pager under the table. Visible is false when
// everything fits on one page.
type Controls struct {
	Visible   bool       `json:"visible"`
	Page      int        `json:"page"`
	PageCount int        `json:"page_count"`
	HasPrev   bool       `json:"has_prev"`
	HasNext   bool       `json:"has_next"`
	Prev      int        `json:"prev"`
	Next      int        `json:"next"`
	Links     []PageLink `json:"links,omitempty"`
}

// BuildControls lists the first and last page, the current page with its
// neighbours, and one ellipsis for each run of hidden pages.
func BuildControls(page, n, size int) Controls {
	count := PageCount(n, size)
	page = ClampPage(page, n, size)
	c := Controls{
		Page:      page,
		PageCount: count,
		HasPrev:   page > 1,
		HasNext:   page < count,
		Prev:      page - 1,
		Next:      page + 1,
	}
	if count <= 1 {
		return c
	}
	c.Visible = true

	last := 0
	for i := 1; i <= count; i++ {
		if i != 1 && i != count && (i < page-1 || i > page+1) {
			continue
		}
		if last != 0 && i-last > 1 {
			c.Links = append(c.Links, PageLink{Ellipsis: true})
		}
		c.Links = append(c.Links, PageLink{Page: i, Current: i == page})
		last = i
	}
	return c
}
