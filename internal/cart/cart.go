// Package cart implements the in-progress sale: an ordered set of line items
// plus the discount, customer, and payment selections that accompany them.
// A Cart is plain state with no I/O; totals are always derived via Pricing
// and never cached.
package cart

import (
	"github.com/google/uuid"

	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/pricing"
)

// DefaultTaxRate is the VAT percentage applied when no override is set.
const DefaultTaxRate = 15

// LineItem is a single entry in the cart. Key is the catalog item id for
// catalog selections and a generated uuid for custom items; two adds merge
// only when Key, Name, and UnitPrice all match.
type LineItem struct {
	Key       string
	Name      string
	UnitPrice float64
	Quantity  int
	Category  string
	Kind      domain.ItemKind
}

// Cart holds one in-progress sale. Not safe for concurrent use; each
// terminal session owns its own Cart.
type Cart struct {
	items         []LineItem
	customerName  string
	discount      pricing.Discount
	taxRate       float64
	paymentMethod domain.PaymentMethod
}

// New returns an empty cart. A negative taxRate falls back to DefaultTaxRate.
func New(taxRate float64) *Cart {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &Cart{taxRate: taxRate}
}

// AddItemParams describes one add operation. Set Item for a catalog
// selection; leave it nil and fill the Custom* fields for an ad-hoc item.
// Quantity must be at least 1.
type AddItemParams struct {
	Item     *domain.CatalogItem
	Quantity int

	CustomName     string
	CustomPrice    float64
	CustomCategory string
	CustomKind     domain.ItemKind
}

// AddItem appends or merges a line item. Catalog items snapshot the unit
// price at add time; later catalog changes never touch the cart. A failed
// add leaves the cart unchanged.
func (c *Cart) AddItem(p AddItemParams) (*LineItem, error) {
	const op = "cart.AddItem"

	qty := p.Quantity
	if qty < 1 {
		return nil, domain.Errorf(domain.EINVALID, op, "quantity must be at least 1")
	}

	var line LineItem
	switch {
	case p.Item != nil:
		if p.Item.UnitPrice < 0 {
			return nil, domain.Errorf(domain.EINVALID, op, "item price cannot be negative")
		}
		line = LineItem{
			Key:       p.Item.ID,
			Name:      p.Item.Name,
			UnitPrice: p.Item.UnitPrice,
			Quantity:  qty,
			Category:  p.Item.Category,
			Kind:      p.Item.Kind,
		}
	default:
		if p.CustomName == "" {
			return nil, domain.Errorf(domain.EINVALID, op, "custom item requires a name")
		}
		if p.CustomPrice <= 0 {
			return nil, domain.Errorf(domain.EINVALID, op, "custom item requires a positive price")
		}
		if p.CustomCategory == "" {
			return nil, domain.Errorf(domain.EINVALID, op, "custom item requires a category")
		}
		if !p.CustomKind.Valid() {
			return nil, domain.Errorf(domain.EINVALID, op, "custom item requires a valid kind")
		}
		line = LineItem{
			Key:       uuid.New().String(),
			Name:      p.CustomName,
			UnitPrice: p.CustomPrice,
			Quantity:  qty,
			Category:  p.CustomCategory,
			Kind:      p.CustomKind,
		}
	}

	for i := range c.items {
		existing := &c.items[i]
		if existing.Key == line.Key && existing.Name == line.Name && existing.UnitPrice == line.UnitPrice {
			existing.Quantity += qty
			merged := *existing
			return &merged, nil
		}
	}

	c.items = append(c.items, line)
	added := line
	return &added, nil
}

// UpdateQuantity sets an absolute quantity. Unlike DecrementOrRemove it
// refuses to drop a line: quantities below 1 are rejected.
func (c *Cart) UpdateQuantity(key string, qty int) error {
	const op = "cart.UpdateQuantity"

	if qty < 1 {
		return domain.Errorf(domain.EINVALID, op, "quantity must be at least 1")
	}
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity = qty
			return nil
		}
	}
	return domain.Errorf(domain.EINVALID, op, "no line item with key %q", key)
}

// DecrementOrRemove steps a line's quantity down by delta, removing the line
// when it reaches zero. Unknown keys are a no-op.
func (c *Cart) DecrementOrRemove(key string, delta int) {
	if delta < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].Key == key {
			c.items[i].Quantity -= delta
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return
		}
	}
}

// RemoveItem drops a line outright. Removing an absent key is a no-op.
func (c *Cart) RemoveItem(key string) {
	for i := range c.items {
		if c.items[i].Key == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetDiscount replaces the cart-level discount. Amount discounts above the
// subtotal are accepted here and capped during pricing.
func (c *Cart) SetDiscount(t pricing.DiscountType, v float64) error {
	const op = "cart.SetDiscount"

	if t != pricing.DiscountPercentage && t != pricing.DiscountAmount {
		return domain.Errorf(domain.EINVALID, op, "unknown discount type %q", t)
	}
	if v < 0 {
		return domain.Errorf(domain.EINVALID, op, "discount cannot be negative")
	}
	if t == pricing.DiscountPercentage && v > 100 {
		return domain.Errorf(domain.EINVALID, op, "percentage discount cannot exceed 100")
	}
	c.discount = pricing.Discount{Type: t, Value: v}
	return nil
}

// SetCustomerName attaches an optional customer name to the sale.
func (c *Cart) SetCustomerName(name string) {
	c.customerName = name
}

// SetPaymentMethod selects how the sale is paid. The method set is closed.
func (c *Cart) SetPaymentMethod(m domain.PaymentMethod) error {
	const op = "cart.SetPaymentMethod"

	if !m.Valid() {
		return domain.Errorf(domain.EINVALID, op, "unknown payment method %q", m)
	}
	c.paymentMethod = m
	return nil
}

// SetTaxRate overrides the VAT percentage for this sale.
func (c *Cart) SetTaxRate(rate float64) error {
	const op = "cart.SetTaxRate"

	if rate < 0 {
		return domain.Errorf(domain.EINVALID, op, "tax rate cannot be negative")
	}
	c.taxRate = rate
	return nil
}

// Clear resets the cart to its post-New state, keeping the tax rate.
func (c *Cart) Clear() {
	c.items = nil
	c.customerName = ""
	c.discount = pricing.Discount{}
	c.paymentMethod = ""
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) CustomerName() string { return c.customerName }

func (c *Cart) PaymentMethod() domain.PaymentMethod { return c.paymentMethod }

func (c *Cart) Discount() pricing.Discount { return c.discount }

func (c *Cart) TaxRate() float64 { return c.taxRate }

// Pricing computes the full breakdown from current state. Nothing is cached;
// every call recomputes from the line items.
func (c *Cart) Pricing() pricing.Breakdown {
	lines := make([]pricing.Line, len(c.items))
	for i, item := range c.items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	return pricing.Calculate(pricing.Params{
		Lines:          lines,
		Discount:       c.discount,
		TaxRatePercent: c.taxRate,
	})
}
