package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/listgrid/internal/listing"
)

const listingColumns = `
	id, title, category, tags, group_id, is_promoted, promotion_level,
	engagement_count, engagement_delta_24h, is_editors_pick, created_at
`

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// CreateListing inserts a new listing
func (db *DB) CreateListing(ctx context.Context, item *listing.Item) error {
	return insertListing(ctx, db, item)
}

func insertListing(ctx context.Context, ex execer, item *listing.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.PromotionLevel == "" {
		item.PromotionLevel = listing.PromotionNone
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	tags, err := encodeTags(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO listings (
			id, title, category, tags, group_id, is_promoted, promotion_level,
			engagement_count, engagement_delta_24h, is_editors_pick, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, item.Title, item.Category, tags, NullString(item.GroupID),
		item.IsPromoted, string(item.PromotionLevel), item.EngagementCount,
		NullFloat64(item.EngagementDelta24h), item.IsEditorsPick,
		item.CreatedAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetListing retrieves a listing by ID
func (db *DB) GetListing(ctx context.Context, id string) (*listing.Item, error) {
	row := db.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)

	item, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateListing replaces the stored fields of an existing listing
func (db *DB) UpdateListing(ctx context.Context, item *listing.Item) error {
	tags, err := encodeTags(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	res, err := db.ExecContext(ctx, `
		UPDATE listings SET
			title = ?, category = ?, tags = ?, group_id = ?, is_promoted = ?,
			promotion_level = ?, engagement_count = ?, engagement_delta_24h = ?,
			is_editors_pick = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`,
		item.Title, item.Category, tags, NullString(item.GroupID), item.IsPromoted,
		string(item.PromotionLevel), item.EngagementCount, NullFloat64(item.EngagementDelta24h),
		item.IsEditorsPick, item.CreatedAt.UTC(), time.Now().UTC(),
		item.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, item.ID)
}

// DeleteListing removes a listing
func (db *DB) DeleteListing(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// ListListings retrieves listings with optional filters, oldest first
func (db *DB) ListListings(ctx context.Context, opts ListOptions) ([]listing.Item, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE 1=1"
	args := []interface{}{}

	if opts.Category != nil {
		query += " AND category = ?"
		args = append(args, *opts.Category)
	}
	if opts.GroupID != nil {
		query += " AND group_id = ?"
		args = append(args, *opts.GroupID)
	}
	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY created_at ASC, id ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []listing.Item
	for rows.Next() {
		item, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// ImportListings inserts or replaces listings in a single transaction.
// It returns the number of listings written.
func (db *DB) ImportListings(ctx context.Context, items []listing.Item) (int, error) {
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for i := range items {
			if items[i].ID != "" {
				if _, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", items[i].ID); err != nil {
					return err
				}
			}
			if err := insertListing(ctx, tx, &items[i]); err != nil {
				return fmt.Errorf("failed to import listing %s: %w", items[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// CountByCategory returns listing counts per category, largest first
func (db *DB) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM listings
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

func scanListing(s rowScanner) (*listing.Item, error) {
	item := &listing.Item{}
	var tags, level string
	var groupID sql.NullString
	var delta sql.NullFloat64

	if err := s.Scan(
		&item.ID, &item.Title, &item.Category, &tags, &groupID, &item.IsPromoted, &level,
		&item.EngagementCount, &delta, &item.IsEditorsPick, &item.CreatedAt,
	); err != nil {
		return nil, err
	}

	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, fmt.Errorf("listing %s has malformed tags: %w", item.ID, err)
	}

	item.Tags = decoded
	item.GroupID = StringPtr(groupID)
	item.PromotionLevel = listing.PromotionLevel(level)
	item.EngagementDelta24h = Float64Ptr(delta)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
