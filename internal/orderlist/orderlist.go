// Package orderlist filters and paginates a user's order collection.
// It is a pure transformation of its inputs: no I/O, no shared state,
// safe to re-evaluate on every search, status, or page change.
package orderlist

import (
	"strings"

	"github.com/shopfront/account-service/internal/entities"
)

const DefaultPageSize = 5

// StatusAll disables status filtering.
const StatusAll = "all"

type Query struct {
	// Search matches the order ID or any item's product name,
	// case-insensitive substring.
	Search string
	// Status is StatusAll or one of the order status values,
	// compared case-insensitively.
	Status string
	// Page is 1-indexed and clamped to the filtered collection.
	Page     int
	PageSize int
}

// Page is one displayable slice of the filtered collection plus the
// metadata the storefront renders ("Showing X to Y of Z", pager state).
type Page struct {
	Orders      []entities.Order
	TotalCount  int
	TotalPages  int
	CurrentPage int
	// RangeStart and RangeEnd are 1-indexed display bounds; both are
	// zero when the filtered collection is empty.
	RangeStart int
	RangeEnd   int
}

// Filter applies the free-text predicate and the status predicate, in
// that order, preserving the input ordering. An order passes the text
// predicate when the search is empty, its ID matches, or any item's
// product name matches (logical OR). The status predicate then keeps
// only orders with the requested status unless it is StatusAll.
func Filter(orders []entities.Order, search, status string) []entities.Order {
	filtered := orders

	if search != "" {
		needle := strings.ToLower(search)
		kept := make([]entities.Order, 0, len(filtered))
		for _, order := range filtered {
			if matchesSearch(order, needle) {
				kept = append(kept, order)
			}
		}
		filtered = kept
	}

	if status != "" && !strings.EqualFold(status, StatusAll) {
		kept := make([]entities.Order, 0, len(filtered))
		for _, order := range filtered {
			if strings.EqualFold(string(order.Status), status) {
				kept = append(kept, order)
			}
		}
		filtered = kept
	}

	return filtered
}

func matchesSearch(order entities.Order, needle string) bool {
	if strings.Contains(strings.ToLower(order.ID), needle) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Product.Name), needle) {
			return true
		}
	}
	return false
}

// Paginate filters the collection and returns the requested page with
// the page number clamped to [1, totalPages]. It never fails: an
// out-of-range page saturates at the boundary and an empty filtered
// collection yields an empty page with TotalPages 0.
func Paginate(orders []entities.Order, q Query) Page {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	filtered := Filter(orders, q.Search, q.Status)
	total := len(filtered)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	page := clampPage(q.Page, totalPages)
	start := (page - 1) * q.PageSize
	end := min(start+q.PageSize, total)

	result := Page{
		Orders:      filtered[start:end],
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if total > 0 {
		result.RangeStart = start + 1
		result.RangeEnd = end
	}
	return result
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	if totalPages == 0 {
		return 1
	}
	return page
}
