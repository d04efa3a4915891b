package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/modules/catalog/infrastructure/persistence/models"
	"github.com/amadeus-works/koechel/pkg/composables"
	"github.com/amadeus-works/koechel/pkg/repo"
)

const entryColumns = `id, kind, title, genre, note, koechel_no, year, month, day, sort_order, created_at, updated_at`

type CatalogRepository struct{}

func NewCatalogRepository() entry.Repository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) GetPaginated(ctx context.Context, params *entry.FindParams) ([]entry.Entry, int64, error) {
	if params == nil {
		params = &entry.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildEntryFilters(params)
	query := `SELECT ` + entryColumns + ` FROM catalog_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + entryOrderClause(params)
	if clause := repo.FormatLimitOffset(params.Limit, params.Offset); clause != "" {
		query += " " + clause
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM catalog_entries`
	if len(where) > 0 {
		countQuery += " WHERE " + strings.Join(where, " AND ")
	}
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (entry.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entry.Entry{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+entryColumns+` FROM catalog_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.Entry{}, entry.ErrNotFound
		}
		return entry.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepository) Create(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entry.Entry{}, err
	}

	dbRow := toDBEntry(e)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}
	dbRow.UpdatedAt = dbRow.CreatedAt

	row := tx.QueryRow(ctx, `
		INSERT INTO catalog_entries (id, kind, title, genre, note, koechel_no, year, month, day, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+entryColumns,
		dbRow.ID,
		dbRow.Kind,
		dbRow.Title,
		dbRow.Genre,
		dbRow.Note,
		dbRow.KoechelNo,
		dbRow.Year,
		dbRow.Month,
		dbRow.Day,
		dbRow.SortOrder,
		dbRow.CreatedAt,
		dbRow.UpdatedAt,
	)
	created, err := scanEntry(row)
	if err != nil {
		return entry.Entry{}, gerrors.Wrap(err, "create catalog entry")
	}
	return created, nil
}

func (r *CatalogRepository) Update(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return entry.Entry{}, err
	}

	dbRow := toDBEntry(e)
	row := tx.QueryRow(ctx, `
		UPDATE catalog_entries
		SET kind = $2, title = $3, genre = $4, note = $5, koechel_no = $6,
		    year = $7, month = $8, day = $9, sort_order = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+entryColumns,
		dbRow.ID,
		dbRow.Kind,
		dbRow.Title,
		dbRow.Genre,
		dbRow.Note,
		dbRow.KoechelNo,
		dbRow.Year,
		dbRow.Month,
		dbRow.Day,
		dbRow.SortOrder,
	)
	updated, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.Entry{}, entry.ErrNotFound
		}
		return entry.Entry{}, gerrors.Wrap(err, "update catalog entry")
	}
	return updated, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM catalog_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entry.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) YearGroup(ctx context.Context, kind entry.Kind, year int) ([]entry.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+entryColumns+`
		FROM catalog_entries
		WHERE kind = $1 AND year = $2 AND month IS NULL AND day IS NULL
		ORDER BY sort_order ASC, created_at ASC`,
		string(kind), year,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *CatalogRepository) UpdateOrders(ctx context.Context, updates []entry.OrderUpdate) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	for _, u := range updates {
		tag, err := tx.Exec(ctx,
			`UPDATE catalog_entries SET sort_order = $2, updated_at = now() WHERE id = $1`,
			u.ID, u.SortOrder,
		)
		if err != nil {
			return gerrors.Wrap(err, "update sort order")
		}
		if tag.RowsAffected() == 0 {
			return entry.ErrNotFound
		}
	}
	return nil
}

func buildEntryFilters(params *entry.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	argPos := 1

	if params.Kind != "" {
		where = append(where, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, string(params.Kind))
		argPos++
	}
	if params.Year != nil {
		where = append(where, fmt.Sprintf("year = $%d", argPos))
		args = append(args, *params.Year)
		argPos++
	}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+q+"%")
		argPos++
	}
	if genre := strings.TrimSpace(params.Genre); genre != "" {
		where = append(where, fmt.Sprintf("LOWER(genre) = LOWER($%d)", argPos))
		args = append(args, genre)
	}
	return where, args
}

func entryOrderClause(params *entry.FindParams) string {
	dir := "ASC"
	if params.SortDesc {
		dir = "DESC"
	}
	switch params.SortBy {
	case entry.SortFieldTitle:
		return "title " + dir
	default:
		// Canonical catalog order: year, then dated entries by date, then
		// the manual sequence. Undated entries sort before dated ones.
		return fmt.Sprintf("year %s, COALESCE(month, 0) ASC, COALESCE(day, 0) ASC, sort_order ASC", dir)
	}
}

func scanEntry(row pgx.Row) (entry.Entry, error) {
	var m models.CatalogEntry
	if err := row.Scan(
		&m.ID,
		&m.Kind,
		&m.Title,
		&m.Genre,
		&m.Note,
		&m.KoechelNo,
		&m.Year,
		&m.Month,
		&m.Day,
		&m.SortOrder,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return entry.Entry{}, err
	}
	return toDomainEntry(&m), nil
}

func scanEntries(rows pgx.Rows) ([]entry.Entry, error) {
	defer rows.Close()

	var out []entry.Entry
	for rows.Next() {
		var m models.CatalogEntry
		if err := rows.Scan(
			&m.ID,
			&m.Kind,
			&m.Title,
			&m.Genre,
			&m.Note,
			&m.KoechelNo,
			&m.Year,
			&m.Month,
			&m.Day,
			&m.SortOrder,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, toDomainEntry(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
