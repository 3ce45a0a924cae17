package domain

// ItemKind classifies a catalog entry.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
	KindCombo   ItemKind = "combo"
)

// Valid reports whether k is one of the known kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindProduct, KindService, KindCombo:
		return true
	}
	return false
}

// CatalogItem is a purchasable item as exposed by the catalog provider.
// Items are immutable for the duration of a checkout session; the cart
// snapshots the unit price at add time and never re-reads it.
type CatalogItem struct {
	ID        string
	Name      string
	UnitPrice float64
	Category  string
	Kind      ItemKind

	// Stock is catalog metadata only. It is not decremented by cart
	// operations and is meaningless for services.
	Stock int
}

// Category groups catalog items for display and reporting.
type Category struct {
	ID          int64
	Name        string
	Description string
}
