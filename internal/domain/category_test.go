package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCategoryDescriptionBoundsDifferByLevel(t *testing.T) {
	long := strings.Repeat("a", 301)

	top, err := NewTopLevelCategory(uuid.New(), "Garden", long)
	if err != nil {
		t.Fatalf("301 characters should be valid for a top level description: %v", err)
	}
	if _, err := NewMidLevelCategory(uuid.New(), "Tools", long, top); err == nil {
		t.Error("301 characters should be rejected for a mid level description")
	}

	if _, err := NewTopLevelCategory(uuid.New(), "Garden", strings.Repeat("a", 3001)); err == nil {
		t.Error("3001 characters should be rejected for a top level description")
	}
}

func TestCategoryNameBounds(t *testing.T) {
	if _, err := NewTopLevelCategory(uuid.New(), "G", ""); err == nil {
		t.Error("single character name should be rejected")
	}
	if _, err := NewTopLevelCategory(uuid.New(), strings.Repeat("a", 51), ""); err == nil {
		t.Error("51 character name should be rejected")
	}
}

func TestMissingParentIsRejected(t *testing.T) {
	if _, err := NewMidLevelCategory(uuid.New(), "Tools", "", nil); !errors.Is(err, ErrIncompleteAggregate) {
		t.Errorf("nil parent = %v, want ErrIncompleteAggregate", err)
	}
	if _, err := NewTerminalLevelCategory(uuid.New(), "Shovels", "", nil); !errors.Is(err, ErrIncompleteAggregate) {
		t.Errorf("nil parent = %v, want ErrIncompleteAggregate", err)
	}
}
