package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var productColumns = []string{"id", "name", "description", "price", "stock", "available"}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	p := domain.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Available)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListProducts(ctx context.Context, search string, limit, offset uint64) ([]*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		OrderBy("id").
		Limit(limit).
		Offset(offset)
	if search != "" {
		statement = statement.Where(sq.ILike{"name": "%" + search + "%"})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	return list, rows.Err()
}

func (r *Repository) ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// ReadProducts returns the products found among ids. Missing ids are absent
// from the map.
func (r *Repository) ReadProducts(ctx context.Context, productIDs []uint64) (map[uint64]*domain.Product, error) {
	result := make(map[uint64]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": productIDs})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = p
	}

	return result, rows.Err()
}
