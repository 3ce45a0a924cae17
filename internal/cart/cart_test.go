package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvanrensburg/kassa/internal/cart"
	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/pricing"
)

func catalogItem(id, name string, price float64) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:        id,
		Name:      name,
		UnitPrice: price,
		Category:  "Beverages",
		Kind:      domain.KindProduct,
	}
}

func TestCart_AddItem_CatalogSelection(t *testing.T) {
	c := cart.New(15)

	line, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, "p1", line.Key)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 35.0, line.UnitPrice)
	assert.False(t, c.IsEmpty())
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := cart.New(15)

	for _, qty := range []int{0, -1} {
		_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: qty})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
	_, err := c.AddItem(cart.AddItemParams{
		Quantity:       0,
		CustomName:     "Gift wrap",
		CustomPrice:    20,
		CustomCategory: "Services",
		CustomKind:     domain.KindService,
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.True(t, c.IsEmpty())
}

func TestCart_AddItem_MergesSameItem(t *testing.T) {
	c := cart.New(15)
	item := catalogItem("p1", "Coffee", 35)

	_, err := c.AddItem(cart.AddItemParams{Item: item, Quantity: 2})
	require.NoError(t, err)
	line, err := c.AddItem(cart.AddItemParams{Item: item, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, c.Items(), 1)
}

func TestCart_AddItem_PriceSnapshotDoesNotMerge(t *testing.T) {
	// Same catalog id at a new price is a distinct line, not a merge.
	c := cart.New(15)

	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)
	_, err = c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 40), Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, c.Items(), 2)
}

func TestCart_AddItem_CustomItem(t *testing.T) {
	c := cart.New(15)

	line, err := c.AddItem(cart.AddItemParams{
		Quantity:       1,
		CustomName:     "Gift wrap",
		CustomPrice:    20,
		CustomCategory: "Services",
		CustomKind:     domain.KindService,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, line.Key)
	assert.NotEqual(t, "Gift wrap", line.Key)
	assert.Equal(t, domain.KindService, line.Kind)
}

func TestCart_AddItem_CustomItemsNeverMerge(t *testing.T) {
	c := cart.New(15)
	p := cart.AddItemParams{
		Quantity:       1,
		CustomName:     "Gift wrap",
		CustomPrice:    20,
		CustomCategory: "Services",
		CustomKind:     domain.KindService,
	}

	first, err := c.AddItem(p)
	require.NoError(t, err)
	second, err := c.AddItem(p)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.Len(t, c.Items(), 2)
}

func TestCart_AddItem_InvalidCustomItemLeavesCartUnchanged(t *testing.T) {
	c := cart.New(15)

	cases := []cart.AddItemParams{
		{Quantity: 1, CustomPrice: 20, CustomCategory: "Services", CustomKind: domain.KindService},
		{Quantity: 1, CustomName: "Gift wrap", CustomCategory: "Services", CustomKind: domain.KindService},
		{Quantity: 1, CustomName: "Gift wrap", CustomPrice: -5, CustomCategory: "Services", CustomKind: domain.KindService},
		{Quantity: 1, CustomName: "Gift wrap", CustomPrice: 20, CustomKind: domain.KindService},
		{Quantity: 1, CustomName: "Gift wrap", CustomPrice: 20, CustomCategory: "Services", CustomKind: "bundle"},
	}
	for _, p := range cases {
		_, err := c.AddItem(p)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
	assert.True(t, c.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity("p1", 4))
	assert.Equal(t, 4, c.Items()[0].Quantity)
}

func TestCart_UpdateQuantity_RejectsBelowOne(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.UpdateQuantity("p1", 0)))
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.UpdateQuantity("p1", -1)))
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCart_UpdateQuantity_UnknownKey(t *testing.T) {
	c := cart.New(15)

	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.UpdateQuantity("missing", 2)))
}

func TestCart_DecrementOrRemove(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 3})
	require.NoError(t, err)

	c.DecrementOrRemove("p1", 1)
	assert.Equal(t, 2, c.Items()[0].Quantity)

	// Stepping to zero removes the line where UpdateQuantity would refuse.
	c.DecrementOrRemove("p1", 2)
	assert.True(t, c.IsEmpty())
}

func TestCart_DecrementOrRemove_UnknownKeyIsNoop(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	c.DecrementOrRemove("missing", 1)
	assert.Len(t, c.Items(), 1)
}

func TestCart_RemoveItem_Idempotent(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	c.RemoveItem("p1")
	c.RemoveItem("p1")
	assert.True(t, c.IsEmpty())
}

func TestCart_SetDiscount(t *testing.T) {
	c := cart.New(15)

	require.NoError(t, c.SetDiscount(pricing.DiscountPercentage, 10))
	assert.Equal(t, pricing.Discount{Type: pricing.DiscountPercentage, Value: 10}, c.Discount())

	require.NoError(t, c.SetDiscount(pricing.DiscountAmount, 50))
	assert.Equal(t, pricing.Discount{Type: pricing.DiscountAmount, Value: 50}, c.Discount())
}

func TestCart_SetDiscount_Rejections(t *testing.T) {
	c := cart.New(15)

	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.SetDiscount(pricing.DiscountPercentage, -1)))
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.SetDiscount(pricing.DiscountPercentage, 101)))
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.SetDiscount("loyalty", 10)))
}

func TestCart_SetPaymentMethod(t *testing.T) {
	c := cart.New(15)

	for _, m := range []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard, domain.PaymentMobile} {
		require.NoError(t, c.SetPaymentMethod(m))
		assert.Equal(t, m, c.PaymentMethod())
	}
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.SetPaymentMethod("cheque")))
}

func TestCart_SetTaxRate(t *testing.T) {
	c := cart.New(15)

	require.NoError(t, c.SetTaxRate(0))
	assert.Equal(t, 0.0, c.TaxRate())
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(c.SetTaxRate(-1)))
}

func TestCart_Clear(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, c.SetDiscount(pricing.DiscountPercentage, 10))
	require.NoError(t, c.SetPaymentMethod(domain.PaymentCash))
	c.SetCustomerName("Thandi")

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.CustomerName())
	assert.Empty(t, c.PaymentMethod())
	assert.Equal(t, pricing.Discount{}, c.Discount())
	assert.Equal(t, 15.0, c.TaxRate())
}

func TestCart_Pricing_WorkedExample(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Speaker", 250), Quantity: 2})
	require.NoError(t, err)
	_, err = c.AddItem(cart.AddItemParams{Item: catalogItem("p2", "Cable", 45), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, c.SetDiscount(pricing.DiscountPercentage, 10))

	b := c.Pricing()

	assert.InDelta(t, 545.0, b.Subtotal, 1e-9)
	assert.InDelta(t, 54.5, b.DiscountAmount, 1e-9)
	assert.InDelta(t, 73.575, b.TaxAmount, 1e-9)
	assert.InDelta(t, 564.075, b.Total, 1e-9)
}

func TestCart_Pricing_RecomputedAfterMutation(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 100), Quantity: 1})
	require.NoError(t, err)

	assert.InDelta(t, 115.0, c.Pricing().Total, 1e-9)

	require.NoError(t, c.UpdateQuantity("p1", 2))
	assert.InDelta(t, 230.0, c.Pricing().Total, 1e-9)
}

func TestCart_Items_ReturnsCopy(t *testing.T) {
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{Item: catalogItem("p1", "Coffee", 35), Quantity: 1})
	require.NoError(t, err)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
