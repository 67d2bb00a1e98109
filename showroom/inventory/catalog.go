package inventory

import "fmt"

// DefaultPageSize is the number of items shown per page.
const DefaultPageSize = 5

// Catalog is an immutable ordered list of items split into fixed-size pages.
type Catalog struct {
	items    []Item
	pageSize int
}

// PageView is one page of the catalog plus the metadata needed to render it.
type PageView struct {
	Items      []Item
	PageNumber int // 1-based
	TotalPages int
	StartIndex int // 0-based catalog index of Items[0]
}

// NewCatalog validates and copies items. An empty catalog is valid and has one empty page.
func NewCatalog(items []Item, pageSize int) (*Catalog, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return &Catalog{items: append([]Item(nil), items...), pageSize: pageSize}, nil
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int { return len(c.items) }

// PageSize returns the configured page size.
func (c *Catalog) PageSize() int { return c.pageSize }

// TotalPages returns ceil(Len/PageSize), and 1 for an empty catalog.
func (c *Catalog) TotalPages() int {
	if len(c.items) == 0 {
		return 1
	}
	return (len(c.items) + c.pageSize - 1) / c.pageSize
}

// Items returns a copy of every item in catalog order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// GetPage returns the page at the zero-based index, clamped into [0, TotalPages-1].
// Out-of-range requests are corrected silently.
func (c *Catalog) GetPage(requested int) PageView {
	total := c.TotalPages()
	index := min(max(requested, 0), total-1)

	start := index * c.pageSize
	end := min(start+c.pageSize, len(c.items))
	start = min(start, end)

	return PageView{
		Items:      append([]Item(nil), c.items[start:end]...),
		PageNumber: index + 1,
		TotalPages: total,
		StartIndex: start,
	}
}

// Index returns the zero-based page index.
func (v PageView) Index() int { return v.PageNumber - 1 }

// HasPrev reports whether a previous page exists.
func (v PageView) HasPrev() bool { return v.PageNumber > 1 }

// HasNext reports whether a following page exists.
func (v PageView) HasNext() bool { return v.PageNumber < v.TotalPages }
