package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// PostgresStore implements SaleStore over PostgreSQL. Beyond the store
// contract it carries the catalog, category, and settings operations the
// sale service handlers need.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ SaleStore = (*PostgresStore)(nil)

// NewPostgresStore wraps an existing connection pool. The caller owns the
// pool lifecycle.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CommitSale writes the sale row and every item row in one transaction.
// A failing item insert rolls the whole sale back.
func (s *PostgresStore) CommitSale(ctx context.Context, params CreateSaleParams) (*domain.Sale, error) {
	const op = "store.postgres.CommitSale"

	if !params.PaymentMethod.Valid() {
		return nil, domain.Invalid(op, fmt.Sprintf("unknown payment method %q", params.PaymentMethod))
	}
	if len(params.Items) == 0 {
		return nil, domain.Invalid(op, "sale requires at least one item")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	sale := domain.Sale{
		TotalAmount:    params.TotalAmount,
		DiscountAmount: params.DiscountAmount,
		VATAmount:      params.VATAmount,
		CustomerName:   params.CustomerName,
		PaymentMethod:  params.PaymentMethod,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (total_amount, discount_amount, vat_amount, customer_name, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sale_date`,
		params.TotalAmount, params.DiscountAmount, params.VATAmount,
		params.CustomerName, string(params.PaymentMethod),
	).Scan(&sale.ID, &sale.SaleDate)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to insert sale")
	}

	for _, item := range params.Items {
		stored := domain.SaleItem{
			SaleID:     sale.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			sale.ID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
		).Scan(&stored.ID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to insert sale item")
		}
		sale.Items = append(sale.Items, stored)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, op, "failed to commit sale transaction")
	}
	return &sale, nil
}

// ListRecentSales returns up to limit sales with their items, newest first.
func (s *PostgresStore) ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	const op = "store.postgres.ListRecentSales"

	if limit < 1 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, total_amount, discount_amount, vat_amount, sale_date, customer_name, payment_method
		FROM sales
		ORDER BY sale_date DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query sales")
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		var method string
		if err := rows.Scan(&sale.ID, &sale.TotalAmount, &sale.DiscountAmount,
			&sale.VATAmount, &sale.SaleDate, &sale.CustomerName, &method); err != nil {
			return nil, domain.Internal(err, op, "failed to scan sale")
		}
		sale.PaymentMethod = domain.PaymentMethod(method)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to read sales")
	}

	for i := range sales {
		items, err := s.saleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (s *PostgresStore) saleItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	const op = "store.postgres.saleItems"

	rows, err := s.pool.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id`, saleID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query sale items")
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, domain.Internal(err, op, "failed to scan sale item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DashboardStats aggregates all sales into the four headline numbers.
func (s *PostgresStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	const op = "store.postgres.DashboardStats"

	stats := &domain.DashboardStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales`).Scan(&stats.TotalSales, &stats.TotalOrders)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to aggregate sales")
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sale_items`).Scan(&stats.ProductsSold)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to aggregate sale items")
	}

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalSales / float64(stats.TotalOrders)
	}
	return stats, nil
}

// SalesByCategory sums committed sale values per product category. Items
// without a product reference land in the Uncategorized bucket.
func (s *PostgresStore) SalesByCategory(ctx context.Context) ([]domain.CategorySales, error) {
	const op = "store.postgres.SalesByCategory"

	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(c.name, 'Uncategorized'), COALESCE(SUM(si.total_price), 0)
		FROM sale_items si
		LEFT JOIN products p ON p.id = si.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY COALESCE(c.name, 'Uncategorized')
		ORDER BY 2 DESC`)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to aggregate sales by category")
	}
	defer rows.Close()

	var out []domain.CategorySales
	for rows.Next() {
		var cs domain.CategorySales
		if err := rows.Scan(&cs.Category, &cs.Total); err != nil {
			return nil, domain.Internal(err, op, "failed to scan category aggregate")
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// MonthlySales buckets the last months of sales by calendar month,
// oldest first.
func (s *PostgresStore) MonthlySales(ctx context.Context, months int) ([]domain.MonthlySales, error) {
	const op = "store.postgres.MonthlySales"

	if months < 1 {
		months = 6
	}

	rows, err := s.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', sale_date), 'Mon'),
		       COALESCE(SUM(total_amount), 0),
		       COUNT(*)
		FROM sales
		WHERE sale_date >= date_trunc('month', now()) - make_interval(months => $1 - 1)
		GROUP BY date_trunc('month', sale_date)
		ORDER BY date_trunc('month', sale_date)`, months)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to aggregate monthly sales")
	}
	defer rows.Close()

	var out []domain.MonthlySales
	for rows.Next() {
		var ms domain.MonthlySales
		if err := rows.Scan(&ms.Month, &ms.Sales, &ms.Orders); err != nil {
			return nil, domain.Internal(err, op, "failed to scan monthly aggregate")
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

// ListCatalog returns every product as a catalog item, with the category
// name resolved from its foreign key.
func (s *PostgresStore) ListCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	const op = "store.postgres.ListCatalog"

	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, p.price, COALESCE(c.name, ''), p.product_type, p.stock
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY c.name, p.name`)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query products")
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var id int64
		var kind string
		var item domain.CatalogItem
		if err := rows.Scan(&id, &item.Name, &item.UnitPrice,
			&item.Category, &kind, &item.Stock); err != nil {
			return nil, domain.Internal(err, op, "failed to scan product")
		}
		item.ID = strconv.FormatInt(id, 10)
		item.Kind = domain.ItemKind(kind)
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateProductParams describes a new catalog product. CategoryID is nil
// for uncategorized products.
type CreateProductParams struct {
	Name       string
	Price      float64
	CategoryID *int64
	Kind       domain.ItemKind
	Stock      int
}

// CreateProduct inserts a product and returns it as a catalog item.
func (s *PostgresStore) CreateProduct(ctx context.Context, params CreateProductParams) (*domain.CatalogItem, error) {
	const op = "store.postgres.CreateProduct"

	var id int64
	var category string
	err := s.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO products (name, price, category_id, product_type, stock)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, category_id
		)
		SELECT inserted.id, COALESCE(c.name, '')
		FROM inserted
		LEFT JOIN categories c ON c.id = inserted.category_id`,
		params.Name, params.Price, params.CategoryID, string(params.Kind), params.Stock,
	).Scan(&id, &category)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to insert product")
	}
	return &domain.CatalogItem{
		ID:        strconv.FormatInt(id, 10),
		Name:      params.Name,
		UnitPrice: params.Price,
		Category:  category,
		Kind:      params.Kind,
		Stock:     params.Stock,
	}, nil
}

// ListCategories returns all categories ordered by name.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "store.postgres.ListCategories"

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query categories")
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, domain.Internal(err, op, "failed to scan category")
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a category. Duplicate names conflict.
func (s *PostgresStore) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	const op = "store.postgres.CreateCategory"

	c := domain.Category{Name: name, Description: description}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`,
		name, description,
	).Scan(&c.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Conflict(op, fmt.Sprintf("category %q already exists", name))
	}
	if err != nil {
		return nil, domain.Internal(err, op, "failed to insert category")
	}
	return &c, nil
}

// DeleteCategory removes a category by id.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	const op = "store.postgres.DeleteCategory"

	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(op, "category", strconv.FormatInt(id, 10))
	}
	return nil
}

// GetSetting reads a setting value, or fallback when the key is absent.
func (s *PostgresStore) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	const op = "store.postgres.GetSetting"

	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", domain.Internal(err, op, "failed to read setting")
	}
	return value, nil
}

// PutSetting upserts a setting value.
func (s *PostgresStore) PutSetting(ctx context.Context, key, value string) error {
	const op = "store.postgres.PutSetting"

	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	if err != nil {
		return domain.Internal(err, op, "failed to write setting")
	}
	return nil
}
