// Package checkout turns a cart into a committed sale. The submitter tries
// the sale store under a bounded timeout; when the store cannot take the
// sale it falls back to a locally generated receipt so the till keeps
// moving. Fallback sales are not queued for later replay.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dvanrensburg/kassa/internal/cart"
	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/pricing"
	"github.com/dvanrensburg/kassa/internal/store"
	"github.com/dvanrensburg/kassa/internal/telemetry"
)

// Outcome says which branch a submission took.
type Outcome string

const (
	// OutcomeCommitted means the store accepted and persisted the sale.
	OutcomeCommitted Outcome = "committed"
	// OutcomeLocalFallback means the store was unreachable and the receipt
	// was generated locally. The sale is not persisted anywhere.
	OutcomeLocalFallback Outcome = "local_fallback"
)

// Receipt is what the cashier hands over.
type Receipt struct {
	TransactionID string
	Total         float64
	Outcome       Outcome

	// Sale is the stored record, nil on fallback.
	Sale *domain.Sale
}

// Submitter drives the submission of carts to a sale store.
type Submitter struct {
	store   store.SaleStore
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
	timeout time.Duration
	now     func() time.Time
}

// NewSubmitter wires a submitter to a store.
func NewSubmitter(s store.SaleStore, logger *slog.Logger, opts ...Option) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	sub := &Submitter{
		store:   s,
		logger:  logger,
		timeout: store.DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// Option customizes a Submitter.
type Option func(*Submitter)

// WithMetrics attaches business metrics.
func WithMetrics(m *telemetry.BusinessMetrics) Option {
	return func(s *Submitter) { s.metrics = m }
}

// WithTimeout overrides the store commit timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) { s.timeout = d }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// Submit commits the cart. Precondition failures return an error and leave
// the cart intact; both successful commits and local fallbacks clear it.
func (s *Submitter) Submit(ctx context.Context, c *cart.Cart) (*Receipt, error) {
	const op = "checkout.Submit"

	if c.IsEmpty() {
		s.countRejected("empty_cart")
		return nil, ErrEmptyCart
	}
	method := c.PaymentMethod()
	if method == "" {
		s.countRejected("no_payment_method")
		return nil, ErrNoPaymentMethod
	}
	if !method.Valid() {
		s.countRejected("internal")
		return nil, domain.Errorf(domain.EINTERNAL, op, "cart carries unknown payment method %q", method)
	}

	breakdown := c.Pricing()
	params := store.CreateSaleParams{
		TotalAmount:    pricing.Round2(breakdown.Total),
		DiscountAmount: pricing.Round2(breakdown.DiscountAmount),
		VATAmount:      pricing.Round2(breakdown.TaxAmount),
		CustomerName:   c.CustomerName(),
		PaymentMethod:  method,
	}
	items := c.Items()
	for _, item := range items {
		params.Items = append(params.Items, store.CreateSaleItemParams{
			ProductID:  productID(item),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: pricing.Round2(item.UnitPrice * float64(item.Quantity)),
		})
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sale, err := s.store.CommitSale(commitCtx, params)
	if err != nil {
		receipt := &Receipt{
			TransactionID: s.fallbackTransactionID(),
			Total:         params.TotalAmount,
			Outcome:       OutcomeLocalFallback,
		}
		s.logger.Warn("sale store rejected commit, issuing local receipt",
			slog.String("transaction_id", receipt.TransactionID),
			slog.Float64("total", receipt.Total),
			slog.String("error", err.Error()))
		s.countSubmitted(receipt, method, len(items))
		if s.metrics != nil {
			s.metrics.StoreUnavailable.Inc()
		}
		c.Clear()
		return receipt, nil
	}

	receipt := &Receipt{
		TransactionID: strconv.FormatInt(sale.ID, 10),
		Total:         sale.TotalAmount,
		Outcome:       OutcomeCommitted,
		Sale:          sale,
	}
	s.logger.Info("sale committed",
		slog.String("transaction_id", receipt.TransactionID),
		slog.Float64("total", receipt.Total),
		slog.String("payment_method", string(method)))
	s.countSubmitted(receipt, method, len(items))
	c.Clear()
	return receipt, nil
}

// productID maps a line item back to its catalog row. Catalog keys are the
// numeric product id; custom items carry generated keys and persist without
// a product reference.
func productID(item cart.LineItem) *int64 {
	id, err := strconv.ParseInt(item.Key, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// fallbackTransactionID builds the offline receipt number from the clock:
// TXN plus the last six digits of the unix-millisecond timestamp.
func (s *Submitter) fallbackTransactionID() string {
	millis := s.now().UnixMilli()
	return fmt.Sprintf("TXN%06d", millis%1_000_000)
}

func (s *Submitter) countRejected(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SalesRejected.WithLabelValues(reason).Inc()
}

func (s *Submitter) countSubmitted(r *Receipt, method domain.PaymentMethod, itemCount int) {
	if s.metrics == nil {
		return
	}
	outcome := string(r.Outcome)
	s.metrics.SalesSubmitted.WithLabelValues(outcome, string(method)).Inc()
	s.metrics.SaleValue.WithLabelValues(outcome).Observe(r.Total)
	s.metrics.SaleItemCount.WithLabelValues(outcome).Observe(float64(itemCount))
}
