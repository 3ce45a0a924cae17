package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvanrensburg/kassa/internal/cart"
	"github.com/dvanrensburg/kassa/internal/checkout"
	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/pricing"
	"github.com/dvanrensburg/kassa/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{
		Item:     &domain.CatalogItem{ID: "7", Name: "Speaker", UnitPrice: 250, Category: "Electronics", Kind: domain.KindProduct},
		Quantity: 2,
	})
	require.NoError(t, err)
	_, err = c.AddItem(cart.AddItemParams{
		Quantity:       1,
		CustomName:     "Gift wrap",
		CustomPrice:    45,
		CustomCategory: "Services",
		CustomKind:     domain.KindService,
	})
	require.NoError(t, err)
	require.NoError(t, c.SetDiscount(pricing.DiscountPercentage, 10))
	require.NoError(t, c.SetPaymentMethod(domain.PaymentCash))
	return c
}

func TestSubmitter_Submit_EmptyCart(t *testing.T) {
	mock := &store.Mock{}
	sub := checkout.NewSubmitter(mock, discardLogger())

	c := cart.New(15)
	require.NoError(t, c.SetPaymentMethod(domain.PaymentCash))

	receipt, err := sub.Submit(context.Background(), c)

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Equal(t, domain.EPRECONDITION, domain.ErrorCode(err))
	assert.Zero(t, mock.CommitSaleCalls)
}

func TestSubmitter_Submit_NoPaymentMethod(t *testing.T) {
	mock := &store.Mock{}
	sub := checkout.NewSubmitter(mock, discardLogger())

	c := cart.New(15)
	_, err := c.AddItem(cart.AddItemParams{
		Item:     &domain.CatalogItem{ID: "7", Name: "Speaker", UnitPrice: 250, Kind: domain.KindProduct},
		Quantity: 1,
	})
	require.NoError(t, err)

	receipt, err := sub.Submit(context.Background(), c)

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, checkout.ErrNoPaymentMethod)
	assert.NotErrorIs(t, err, checkout.ErrEmptyCart)
	assert.False(t, c.IsEmpty(), "precondition failure must leave the cart intact")
	assert.Zero(t, mock.CommitSaleCalls)
}

func TestSubmitter_Submit_Committed(t *testing.T) {
	var got store.CreateSaleParams
	mock := &store.Mock{
		CommitSaleFn: func(ctx context.Context, params store.CreateSaleParams) (*domain.Sale, error) {
			got = params
			return &domain.Sale{
				ID:             42,
				TotalAmount:    params.TotalAmount,
				DiscountAmount: params.DiscountAmount,
				VATAmount:      params.VATAmount,
				PaymentMethod:  params.PaymentMethod,
				SaleDate:       time.Now(),
			}, nil
		},
	}
	sub := checkout.NewSubmitter(mock, discardLogger())
	c := fullCart(t)

	receipt, err := sub.Submit(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, checkout.OutcomeCommitted, receipt.Outcome)
	assert.Equal(t, "42", receipt.TransactionID)
	require.NotNil(t, receipt.Sale)
	assert.True(t, c.IsEmpty(), "committed sale must clear the cart")

	// Subtotal 545, 10% discount, 15% VAT, rounded at the boundary.
	assert.Equal(t, 564.08, got.TotalAmount)
	assert.Equal(t, 54.5, got.DiscountAmount)
	assert.Equal(t, 73.58, got.VATAmount)
	assert.Equal(t, domain.PaymentCash, got.PaymentMethod)

	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].ProductID)
	assert.Equal(t, int64(7), *got.Items[0].ProductID)
	assert.Nil(t, got.Items[1].ProductID, "custom items persist without a product reference")
	assert.Equal(t, 500.0, got.Items[0].TotalPrice)
}

func TestSubmitter_Submit_FallbackOnStoreUnavailable(t *testing.T) {
	mock := &store.Mock{
		CommitSaleFn: func(ctx context.Context, params store.CreateSaleParams) (*domain.Sale, error) {
			return nil, fmt.Errorf("%w: connection refused", store.ErrUnavailable)
		},
	}
	fixed := time.UnixMilli(1725000123456)
	sub := checkout.NewSubmitter(mock, discardLogger(), checkout.WithNow(func() time.Time { return fixed }))
	c := fullCart(t)

	receipt, err := sub.Submit(context.Background(), c)
	require.NoError(t, err, "store unavailability is not an error, it is the fallback branch")

	assert.Equal(t, checkout.OutcomeLocalFallback, receipt.Outcome)
	assert.Equal(t, "TXN123456", receipt.TransactionID)
	assert.Equal(t, 564.08, receipt.Total)
	assert.Nil(t, receipt.Sale)
	assert.True(t, c.IsEmpty(), "fallback must clear the cart")
}

func TestSubmitter_Submit_FallbackOnStoreRejection(t *testing.T) {
	mock := &store.Mock{
		CommitSaleFn: func(ctx context.Context, params store.CreateSaleParams) (*domain.Sale, error) {
			return nil, errors.New("constraint violation")
		},
	}
	sub := checkout.NewSubmitter(mock, discardLogger())
	c := fullCart(t)

	receipt, err := sub.Submit(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, checkout.OutcomeLocalFallback, receipt.Outcome)
	assert.True(t, c.IsEmpty())
}

func TestSubmitter_Submit_CommitIsBounded(t *testing.T) {
	mock := &store.Mock{
		CommitSaleFn: func(ctx context.Context, params store.CreateSaleParams) (*domain.Sale, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	sub := checkout.NewSubmitter(mock, discardLogger(), checkout.WithTimeout(20*time.Millisecond))
	c := fullCart(t)

	done := make(chan *checkout.Receipt, 1)
	go func() {
		receipt, err := sub.Submit(context.Background(), c)
		require.NoError(t, err)
		done <- receipt
	}()

	select {
	case receipt := <-done:
		assert.Equal(t, checkout.OutcomeLocalFallback, receipt.Outcome)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after the commit timeout")
	}
}

func TestSubmitter_Submit_FallbackIDFormat(t *testing.T) {
	mock := &store.Mock{
		CommitSaleFn: func(ctx context.Context, params store.CreateSaleParams) (*domain.Sale, error) {
			return nil, store.ErrUnavailable
		},
	}

	cases := []struct {
		millis int64
		want   string
	}{
		{1725000987654, "TXN987654"},
		{1725000000042, "TXN000042"},
	}
	for _, tc := range cases {
		fixed := time.UnixMilli(tc.millis)
		sub := checkout.NewSubmitter(mock, discardLogger(), checkout.WithNow(func() time.Time { return fixed }))

		receipt, err := sub.Submit(context.Background(), fullCart(t))
		require.NoError(t, err)
		assert.Equal(t, tc.want, receipt.TransactionID)
	}
}
