package orderlist

import "github.com/shopfront/account-service/internal/entities"

// View holds the caller-side state of the order history screen: the
// fetched collection plus the current search, status, and page. Every
// accessor recomputes through Paginate, there is no cached result to
// go stale. A View is not safe for concurrent use; each caller owns its own.
type View struct {
	orders   []entities.Order
	search   string
	status   string
	page     int
	pageSize int
}

// NewView starts on page 1 with no search text and no status filter.
func NewView(orders []entities.Order, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		orders:   orders,
		status:   StatusAll,
		page:     1,
		pageSize: pageSize,
	}
}

// SetOrders replaces the collection, e.g. after a refetch. The page
// resets to 1 since positions in the old collection are meaningless.
func (v *View) SetOrders(orders []entities.Order) {
	v.orders = orders
	v.page = 1
}

// SetSearch resets the page to 1: a filter change invalidates any
// deeper page position.
func (v *View) SetSearch(search string) {
	v.search = search
	v.page = 1
}

func (v *View) SetStatus(status string) {
	v.status = status
	v.page = 1
}

// GoToPage saturates at the boundaries, it never fails.
func (v *View) GoToPage(page int) {
	totalPages := v.totalPages()
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}
	v.page = page
}

func (v *View) Next() {
	v.GoToPage(v.page + 1)
}

func (v *View) Previous() {
	v.GoToPage(v.page - 1)
}

// Page returns the current slice and pagination metadata.
func (v *View) Page() Page {
	return Paginate(v.orders, Query{
		Search:   v.search,
		Status:   v.status,
		Page:     v.page,
		PageSize: v.pageSize,
	})
}

func (v *View) totalPages() int {
	filtered := Filter(v.orders, v.search, v.status)
	return (len(filtered) + v.pageSize - 1) / v.pageSize
}
