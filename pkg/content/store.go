package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/db"
)

const sectionColumns = `id, page_slug, section_key, title, subtitle, content, items, is_active, sort_order, updated_at`

// Store provides database operations for page sections.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a content Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

func scanSection(row pgx.Row) (Section, error) {
	var (
		s     Section
		items []byte
	)
	if err := row.Scan(&s.ID, &s.PageSlug, &s.SectionKey, &s.Title, &s.Subtitle, &s.Content,
		&items, &s.IsActive, &s.SortOrder, &s.UpdatedAt); err != nil {
		return Section{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return Section{}, fmt.Errorf("decoding items of %s/%s: %w", s.PageSlug, s.SectionKey, err)
		}
	}
	return s, nil
}

// ListByPage returns the saved sections of a page ordered by sort order.
func (s *Store) ListByPage(ctx context.Context, slug string) ([]Section, error) {
	rows, err := s.dbtx.Query(ctx,
		`SELECT `+sectionColumns+` FROM page_sections
		WHERE page_slug = $1
		ORDER BY sort_order, section_key`,
		slug,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

// Upsert writes the fields set in p. Fields left nil keep their stored value.
// sortOrder is only used when the section is created.
func (s *Store) Upsert(ctx context.Context, slug, key string, sortOrder int, p Payload) (Section, error) {
	var items []byte
	if p.Items != nil {
		raw, err := json.Marshal(*p.Items)
		if err != nil {
			return Section{}, fmt.Errorf("encoding items: %w", err)
		}
		items = raw
	}

	row := s.dbtx.QueryRow(ctx,
		`INSERT INTO page_sections (page_slug, section_key, title, subtitle, content, items, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (page_slug, section_key) DO UPDATE SET
			title = COALESCE(EXCLUDED.title, page_sections.title),
			subtitle = COALESCE(EXCLUDED.subtitle, page_sections.subtitle),
			content = COALESCE(EXCLUDED.content, page_sections.content),
			items = COALESCE(EXCLUDED.items, page_sections.items),
			updated_at = now()
		RETURNING `+sectionColumns,
		slug, key, p.Title, p.Subtitle, p.Content, items, sortOrder,
	)
	sec, err := scanSection(row)
	if err != nil {
		return Section{}, fmt.Errorf("upserting section: %w", err)
	}
	return sec, nil
}

// SetDisplay updates visibility and, when sortOrder is non-nil, position.
// The section row is created if it was never saved.
func (s *Store) SetDisplay(ctx context.Context, slug, key string, isActive bool, sortOrder *int, defaultOrder int) (Section, error) {
	order := defaultOrder
	if sortOrder != nil {
		order = *sortOrder
	}
	row := s.dbtx.QueryRow(ctx,
		`INSERT INTO page_sections (page_slug, section_key, is_active, sort_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (page_slug, section_key) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			sort_order = CASE WHEN $5 THEN EXCLUDED.sort_order ELSE page_sections.sort_order END,
			updated_at = now()
		RETURNING `+sectionColumns,
		slug, key, isActive, order, sortOrder != nil,
	)
	sec, err := scanSection(row)
	if err != nil {
		return Section{}, fmt.Errorf("updating section display: %w", err)
	}
	return sec, nil
}
