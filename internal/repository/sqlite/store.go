package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
)

const (
	storeColumns     = `id, owner_id, name, address, district, city, phone, created_at`
	productColumns   = `id, store_id, name, category, brand, unit, price, image, created_at`
	promotionColumns = `id, store_id, product_ids, title, starts_at, ends_at, created_at`
)

type storeRepo struct {
	db *sql.DB
}

func scanStore(row rowScanner) (*domain.Store, error) {
	s := &domain.Store{}
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.District, &s.City, &s.Phone, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

func (r *storeRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE owner_id = ? ORDER BY id LIMIT 1`, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get store by owner: %w", err)
	}
	return s, nil
}

func (r *storeRepo) Update(ctx context.Context, id int64, update domain.StoreUpdate) (*domain.Store, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stores SET
			name = COALESCE(?, name),
			address = COALESCE(?, address),
			district = COALESCE(?, district),
			city = COALESCE(?, city),
			phone = COALESCE(?, phone)
		 WHERE id = ?`,
		update.Name, update.Address, update.District, update.City, update.Phone, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *storeRepo) SearchByName(ctx context.Context, query string) ([]domain.Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE casefold(name) LIKE ? ESCAPE '\' ORDER BY name, id`,
		likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("search stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, *s)
	}
	return stores, rows.Err()
}

type productRepo struct {
	db *sql.DB
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	if err := row.Scan(&p.ID, &p.StoreID, &p.Name, &p.Category, &p.Brand, &p.Unit,
		&p.Price, &p.Image, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (store_id, name, category, brand, unit, price, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.StoreID, p.Name, p.Category, p.Brand, p.Unit, p.Price, p.Image, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get product id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *productRepo) ListByStore(ctx context.Context, storeID int64, limit int) ([]domain.Product, error) {
	// LIMIT -1 is unbounded in SQLite.
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.Product, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET
			name = COALESCE(?, name),
			category = COALESCE(?, category),
			brand = COALESCE(?, brand),
			unit = COALESCE(?, unit),
			price = COALESCE(?, price),
			image = COALESCE(?, image)
		 WHERE id = ?`,
		update.Name, update.Category, update.Brand, update.Unit, update.Price, update.Image, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectOneRow(result)
}

type promotionRepo struct {
	db *sql.DB
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	p := &domain.Promotion{}
	var productIDs string
	if err := row.Scan(&p.ID, &p.StoreID, &productIDs, &p.Title, &p.StartsAt, &p.EndsAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(productIDs), &p.ProductIDs); err != nil {
		return nil, fmt.Errorf("decode products of promotion %d: %w", p.ID, err)
	}
	return p, nil
}

func encodeIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode product ids: %w", err)
	}
	return string(b), nil
}

func (r *promotionRepo) Create(ctx context.Context, p *domain.Promotion) error {
	ids, err := encodeIDs(p.ProductIDs)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO promotions (store_id, product_ids, title, starts_at, ends_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.StoreID, ids, p.Title, p.StartsAt.UTC(), p.EndsAt.UTC(), now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert promotion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get promotion id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	return nil
}

func (r *promotionRepo) get(ctx context.Context, id int64) (*domain.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return p, nil
}

func (r *promotionRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE store_id = ? ORDER BY starts_at DESC, id DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promotions = append(promotions, *p)
	}
	return promotions, rows.Err()
}

func (r *promotionRepo) Update(ctx context.Context, id int64, update domain.PromotionUpdate) (*domain.Promotion, error) {
	var ids *string
	if update.ProductIDs != nil {
		encoded, err := encodeIDs(*update.ProductIDs)
		if err != nil {
			return nil, err
		}
		ids = &encoded
	}
	var startsAt, endsAt *time.Time
	if update.StartsAt != nil {
		t := update.StartsAt.UTC()
		startsAt = &t
	}
	if update.EndsAt != nil {
		t := update.EndsAt.UTC()
		endsAt = &t
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET
			product_ids = COALESCE(?, product_ids),
			title = COALESCE(?, title),
			starts_at = COALESCE(?, starts_at),
			ends_at = COALESCE(?, ends_at)
		 WHERE id = ?`,
		ids, update.Title, startsAt, endsAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update promotion: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

func (r *promotionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM promotions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	return expectOneRow(result)
}

// expectOneRow turns an UPDATE or DELETE that matched nothing into ErrNotFound.
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
