package orderlist_test

import (
	"fmt"
	"testing"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/orderlist"

	"github.com/stretchr/testify/assert"
)

func TestView_Navigation(t *testing.T) {
	orders := make([]entities.Order, 0, 12)
	for i := 1; i <= 12; i++ {
		orders = append(orders, order(fmt.Sprintf("ord-%02d", i), entities.StatusPending, "Widget"))
	}

	v := orderlist.NewView(orders, 5)

	page := v.Page()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)

	// previous from the first page stays put
	v.Previous()
	assert.Equal(t, 1, v.Page().CurrentPage)

	v.Next()
	assert.Equal(t, 2, v.Page().CurrentPage)

	v.Next()
	v.Next()
	// next from the last page stays put
	assert.Equal(t, 3, v.Page().CurrentPage)

	v.GoToPage(0)
	assert.Equal(t, 1, v.Page().CurrentPage)

	v.GoToPage(99)
	assert.Equal(t, 3, v.Page().CurrentPage)
}

func TestView_FilterChangeResetsPage(t *testing.T) {
	orders := []entities.Order{
		order("o1", entities.StatusDelivered, "Widget A"),
		order("o2", entities.StatusDelivered, "Widget B"),
		order("o3", entities.StatusDelivered, "Widget C"),
		order("o4", entities.StatusPending, "Mug"),
		order("o5", entities.StatusPending, "Lamp"),
		order("o6", entities.StatusShipped, "Widget D"),
	}

	v := orderlist.NewView(orders, 2)
	v.GoToPage(3)
	assert.Equal(t, 3, v.Page().CurrentPage)

	v.SetSearch("widget")
	page := v.Page()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, []string{"o1", "o2"}, ids(page.Orders))

	v.GoToPage(2)
	v.SetStatus("shipped")
	page = v.Page()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, []string{"o6"}, ids(page.Orders))
	assert.Equal(t, 1, page.TotalPages)
}

func TestView_SetOrdersReplacesCollection(t *testing.T) {
	v := orderlist.NewView([]entities.Order{order("o1", entities.StatusPending, "Widget")}, 5)
	assert.Equal(t, 1, v.Page().TotalCount)

	v.SetOrders(nil)
	page := v.Page()
	assert.Empty(t, page.Orders)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Zero(t, page.RangeStart)
	assert.Zero(t, page.RangeEnd)
}
