package settings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Value is one stored setting.
type Value struct {
	Group string
	Key   string
	Value string
}

// Store provides database operations for the site_settings table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a settings Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Load reads every stored setting into a Bag.
func (s *Store) Load(ctx context.Context) (Bag, error) {
	rows, err := s.pool.Query(ctx, `SELECT group_name, key, value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	bag := Bag{}
	for rows.Next() {
		var group, key, value string
		if err := rows.Scan(&group, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		if bag[group] == nil {
			bag[group] = map[string]string{}
		}
		bag[group][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return bag, nil
}

// Save upserts values in one transaction.
func (s *Store) Save(ctx context.Context, values []Value) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, v := range values {
			batch.Queue(
				`INSERT INTO site_settings (group_name, key, value)
				VALUES ($1, $2, $3)
				ON CONFLICT (group_name, key) DO UPDATE
				SET value = EXCLUDED.value, updated_at = now()`,
				v.Group, v.Key, v.Value,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upserting settings: %w", err)
		}
		return nil
	})
}

// SeedDefaults inserts values that are not stored yet and leaves existing
// values alone.
func (s *Store) SeedDefaults(ctx context.Context, values []Value) error {
	batch := &pgx.Batch{}
	for _, v := range values {
		batch.Queue(
			`INSERT INTO site_settings (group_name, key, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (group_name, key) DO NOTHING`,
			v.Group, v.Key, v.Value,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}
	return nil
}
