package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// The catalog uses a fixed three-level category hierarchy:
// TopLevelCategory -> MidLevelCategory -> TerminalLevelCategory.
// Each level exclusively owns a reference to its parent; ancestry is always
// resolved by following parent links upward, so the chain cannot cycle.

func validateCategoryName(level, name string) error {
	if len(name) < 2 || len(name) > 50 {
		return invalid(level+".name", "must be 2 to 50 characters, got %d", len(name))
	}
	return nil
}

// TopLevelCategory is the root level of the hierarchy.
type TopLevelCategory struct {
	id          uuid.UUID
	name        string
	description string
}

// NewTopLevelCategory validates the name (2 to 50 characters) and the
// description (at most 3000 characters, empty allowed).
func NewTopLevelCategory(id uuid.UUID, name, description string) (*TopLevelCategory, error) {
	if err := validateCategoryName("top_level_category", name); err != nil {
		return nil, err
	}
	if len(description) > 3000 {
		return nil, invalid("top_level_category.description", "must be at most 3000 characters, got %d", len(description))
	}
	return &TopLevelCategory{id: id, name: name, description: description}, nil
}

func (c *TopLevelCategory) ID() uuid.UUID       { return c.id }
func (c *TopLevelCategory) Name() string        { return c.name }
func (c *TopLevelCategory) Description() string { return c.description }

// MidLevelCategory sits between a top-level category and the terminal level.
// Its description bound (300) is tighter than the top level's and is enforced
// here, not inherited.
type MidLevelCategory struct {
	id          uuid.UUID
	name        string
	description string
	parent      *TopLevelCategory
}

// NewMidLevelCategory requires an already-constructed parent; there is no
// map-shaped parent input, the caller builds the parent explicitly.
func NewMidLevelCategory(id uuid.UUID, name, description string, parent *TopLevelCategory) (*MidLevelCategory, error) {
	if err := validateCategoryName("mid_level_category", name); err != nil {
		return nil, err
	}
	if len(description) > 300 {
		return nil, invalid("mid_level_category.description", "must be at most 300 characters, got %d", len(description))
	}
	if parent == nil {
		return nil, fmt.Errorf("mid level category %s has no parent: %w", id, ErrIncompleteAggregate)
	}
	return &MidLevelCategory{id: id, name: name, description: description, parent: parent}, nil
}

func (c *MidLevelCategory) ID() uuid.UUID            { return c.id }
func (c *MidLevelCategory) Name() string             { return c.name }
func (c *MidLevelCategory) Description() string      { return c.description }
func (c *MidLevelCategory) Parent() *TopLevelCategory { return c.parent }

func (c *MidLevelCategory) ParentID() uuid.UUID { return c.parent.id }

// TerminalLevelCategory is the leaf level; products attach directly to it.
type TerminalLevelCategory struct {
	id          uuid.UUID
	name        string
	description string
	parent      *MidLevelCategory
}

// NewTerminalLevelCategory requires an already-constructed mid-level parent.
func NewTerminalLevelCategory(id uuid.UUID, name, description string, parent *MidLevelCategory) (*TerminalLevelCategory, error) {
	if err := validateCategoryName("terminal_level_category", name); err != nil {
		return nil, err
	}
	if len(description) > 300 {
		return nil, invalid("terminal_level_category.description", "must be at most 300 characters, got %d", len(description))
	}
	if parent == nil {
		return nil, fmt.Errorf("terminal level category %s has no parent: %w", id, ErrIncompleteAggregate)
	}
	return &TerminalLevelCategory{id: id, name: name, description: description, parent: parent}, nil
}

func (c *TerminalLevelCategory) ID() uuid.UUID            { return c.id }
func (c *TerminalLevelCategory) Name() string             { return c.name }
func (c *TerminalLevelCategory) Description() string      { return c.description }
func (c *TerminalLevelCategory) Parent() *MidLevelCategory { return c.parent }

func (c *TerminalLevelCategory) ParentID() uuid.UUID { return c.parent.id }

// TopLevel walks two parent hops to the root of the hierarchy. A category
// chain with an unpopulated hop fails fast instead of returning a partial
// entity.
func (c *TerminalLevelCategory) TopLevel() (*TopLevelCategory, error) {
	if c.parent == nil || c.parent.parent == nil {
		return nil, fmt.Errorf("terminal level category %s has an unpopulated ancestry chain: %w", c.id, ErrIncompleteAggregate)
	}
	return c.parent.parent, nil
}
