package repository

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// CategoryRepository defines read access to the three-level category
// hierarchy.
//
// The children listings distinguish a missing parent from a parent with no
// children: the former fails with the parent's not-found sentinel, the
// latter returns an empty (non-nil) slice. Callers rely on that distinction
// for 404-vs-empty-list semantics.
type CategoryRepository interface {
	GetTopLevelCategory(ctx context.Context, id uuid.UUID) (*domain.TopLevelCategory, error)
	GetTopLevelCategories(ctx context.Context) ([]*domain.TopLevelCategory, error)
	GetMidLevelCategory(ctx context.Context, id uuid.UUID) (*domain.MidLevelCategory, error)
	GetMidLevelCategories(ctx context.Context, parentID uuid.UUID) ([]*domain.MidLevelCategory, error)
	GetTerminalLevelCategory(ctx context.Context, id uuid.UUID) (*domain.TerminalLevelCategory, error)
	GetTerminalLevelCategories(ctx context.Context, parentID uuid.UUID) ([]*domain.TerminalLevelCategory, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func buildMidCategory(id []byte, name, description sql.NullString, parent *domain.TopLevelCategory) (*domain.MidLevelCategory, error) {
	mid, err := decodeID(id)
	if err != nil {
		return nil, err
	}
	return domain.NewMidLevelCategory(mid, name.String, description.String, parent)
}

// GetTopLevelCategory retrieves a top level category by ID.
func (r *categoryRepository) GetTopLevelCategory(ctx context.Context, id uuid.UUID) (*domain.TopLevelCategory, error) {
	query := `SELECT id, name, description FROM top_level_category WHERE id = $1`

	var (
		rawID       []byte
		name        string
		description sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, encodeID(id)).Scan(&rawID, &name, &description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTopCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find top level category by ID: %w", err)
	}

	decoded, err := decodeID(rawID)
	if err != nil {
		return nil, err
	}
	return domain.NewTopLevelCategory(decoded, name, description.String)
}

// GetTopLevelCategories lists every top level category.
func (r *categoryRepository) GetTopLevelCategories(ctx context.Context) ([]*domain.TopLevelCategory, error) {
	query := `SELECT id, name, description FROM top_level_category ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list top level categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.TopLevelCategory{}
	for rows.Next() {
		var (
			rawID       []byte
			name        string
			description sql.NullString
		)
		if err := rows.Scan(&rawID, &name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan top level category: %w", err)
		}
		id, err := decodeID(rawID)
		if err != nil {
			return nil, err
		}
		category, err := domain.NewTopLevelCategory(id, name, description.String)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top level categories: %w", err)
	}

	return categories, nil
}

// GetMidLevelCategory retrieves a mid level category with its parent loaded.
func (r *categoryRepository) GetMidLevelCategory(ctx context.Context, id uuid.UUID) (*domain.MidLevelCategory, error) {
	query := `
		SELECT m.id, m.name, m.description, t.id, t.name, t.description
		FROM mid_level_category m
		LEFT JOIN top_level_category t ON t.id = m.parent_id
		WHERE m.id = $1
	`

	var (
		rawID, parentID        []byte
		name                   string
		description            sql.NullString
		parentName, parentDesc sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, encodeID(id)).Scan(
		&rawID, &name, &description, &parentID, &parentName, &parentDesc,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMidCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find mid level category by ID: %w", err)
	}

	if parentID == nil {
		return nil, fmt.Errorf("mid level category %s references a missing parent: %w", id, domain.ErrIncompleteAggregate)
	}
	topID, err := decodeID(parentID)
	if err != nil {
		return nil, err
	}
	parent, err := domain.NewTopLevelCategory(topID, parentName.String, parentDesc.String)
	if err != nil {
		return nil, err
	}
	return buildMidCategory(rawID, sql.NullString{String: name, Valid: true}, description, parent)
}

// GetMidLevelCategories lists the children of a top level category. A missing
// parent fails with ErrTopCategoryNotFound; a childless parent returns an
// empty slice.
func (r *categoryRepository) GetMidLevelCategories(ctx context.Context, parentID uuid.UUID) ([]*domain.MidLevelCategory, error) {
	parent, err := r.GetTopLevelCategory(ctx, parentID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, description FROM mid_level_category WHERE parent_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, encodeID(parentID))
	if err != nil {
		return nil, fmt.Errorf("failed to list mid level categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.MidLevelCategory{}
	for rows.Next() {
		var (
			rawID       []byte
			name        string
			description sql.NullString
		)
		if err := rows.Scan(&rawID, &name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan mid level category: %w", err)
		}
		category, err := buildMidCategory(rawID, sql.NullString{String: name, Valid: true}, description, parent)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mid level categories: %w", err)
	}

	return categories, nil
}

// GetTerminalLevelCategory retrieves a terminal category with its full
// ancestry chain loaded.
func (r *categoryRepository) GetTerminalLevelCategory(ctx context.Context, id uuid.UUID) (*domain.TerminalLevelCategory, error) {
	query := `
		SELECT c.id, c.name, c.description,
		       m.id, m.name, m.description,
		       t.id, t.name, t.description
		FROM terminal_level_category c
		LEFT JOIN mid_level_category m ON m.id = c.parent_id
		LEFT JOIN top_level_category t ON t.id = m.parent_id
		WHERE c.id = $1
	`

	var (
		rawID, midID, topID          []byte
		name                         string
		description                  sql.NullString
		midName, midDesc             sql.NullString
		topName, topDesc             sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, encodeID(id)).Scan(
		&rawID, &name, &description,
		&midID, &midName, &midDesc,
		&topID, &topName, &topDesc,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTerminalCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find terminal level category by ID: %w", err)
	}

	if midID == nil || topID == nil {
		return nil, fmt.Errorf("terminal level category %s has an unpopulated ancestry chain: %w", id, domain.ErrIncompleteAggregate)
	}
	decodedTop, err := decodeID(topID)
	if err != nil {
		return nil, err
	}
	top, err := domain.NewTopLevelCategory(decodedTop, topName.String, topDesc.String)
	if err != nil {
		return nil, err
	}
	mid, err := buildMidCategory(midID, midName, midDesc, top)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeID(rawID)
	if err != nil {
		return nil, err
	}
	return domain.NewTerminalLevelCategory(decoded, name, description.String, mid)
}

// GetTerminalLevelCategories lists the children of a mid level category, with
// the same not-found-vs-empty rule as GetMidLevelCategories.
func (r *categoryRepository) GetTerminalLevelCategories(ctx context.Context, parentID uuid.UUID) ([]*domain.TerminalLevelCategory, error) {
	parent, err := r.GetMidLevelCategory(ctx, parentID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, description FROM terminal_level_category WHERE parent_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, encodeID(parentID))
	if err != nil {
		return nil, fmt.Errorf("failed to list terminal level categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.TerminalLevelCategory{}
	for rows.Next() {
		var (
			rawID       []byte
			name        string
			description sql.NullString
		)
		if err := rows.Scan(&rawID, &name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan terminal level category: %w", err)
		}
		id, err := decodeID(rawID)
		if err != nil {
			return nil, err
		}
		category, err := domain.NewTerminalLevelCategory(id, name, description.String, parent)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating terminal level categories: %w", err)
	}

	return categories, nil
}
