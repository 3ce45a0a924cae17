package checkout

import "github.com/dvanrensburg/kassa/internal/domain"

// Precondition errors returned before any store call is attempted. The cart
// is left untouched when one of these comes back.
var (
	ErrEmptyCart       = domain.Errorf(domain.EPRECONDITION, "checkout.submit", "cart is empty")
	ErrNoPaymentMethod = domain.Errorf(domain.EPRECONDITION, "checkout.submit", "no payment method selected")
)
