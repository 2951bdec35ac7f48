package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"money_saver/internal/domain"
	"money_saver/internal/domain/entity"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/logx"
)

const dealsTable = "deals"

// DealRepository stores the curated deal list. It doubles as a feed source.
type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr), //nolint:errorlint
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Fetch returns all deals in curated order. Rows that no longer map to a
// valid deal are logged and skipped.
func (r *DealRepository) Fetch(ctx context.Context) ([]entity.Deal, error) {
	query, args, err := squirrel.Select(dealColumns...).
		From(dealsTable).
		OrderBy("position", "id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.ToSql: %w", err)
	}

	var rows []dealSchema
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list deals")
	}

	deals := make([]entity.Deal, 0, len(rows))

	for _, row := range rows {
		d, err := row.toDomain()
		if err != nil {
			logger(ctx).Warn("deal row skipped", slog.String(logx.FieldDealID, row.ID), logx.Error(err))
			continue
		}

		deals = append(deals, d)
	}

	return deals, nil
}

// Replace makes the table hold exactly the given deals, in order.
func (r *DealRepository) Replace(ctx context.Context, deals []entity.Deal) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		ids := make([]string, 0, len(deals))

		for i, d := range deals {
			if err := r.upsert(ctx, tx, d, i, now); err != nil {
				return err
			}

			ids = append(ids, d.ID)
		}

		query, args, err := squirrel.Delete(dealsTable).
			Where(squirrel.NotEq{"id": ids}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("squirrel.ToSql: %w", err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to delete stale deals")
		}

		return nil
	})
}

func (r *DealRepository) upsert(ctx context.Context, tx *sqlx.Tx, d entity.Deal, position int, now time.Time) error {
	schema, err := fromDeal(d, position, now)
	if err != nil {
		return fmt.Errorf("fromDeal: %w", err)
	}

	updates := make([]string, 0, len(dealColumns)-1)
	for _, c := range dealColumns[1:] {
		updates = append(updates, c+" = EXCLUDED."+c)
	}

	query, args, err := squirrel.Insert(dealsTable).
		Columns(dealColumns...).
		Values(schema.values()...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("squirrel.ToSql: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert deal "+d.ID)
	}

	return nil
}
