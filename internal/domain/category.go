package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// ValidCategoryTypes is the set of supported category types
var ValidCategoryTypes = map[CategoryType]bool{
	CategoryTypeIncome:  true,
	CategoryTypeExpense: true,
}

// hexColorPattern accepts #RGB and #RRGGBB
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Category struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Icon        *string      `json:"icon,omitempty"`
	Color       *string      `json:"color,omitempty"`
	IsEssential bool         `json:"isEssential"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewCategory validates the fields and builds a Category owned by userID.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType, icon, color *string, isEssential bool) (*Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return nil, ErrNameTooShort
	}
	if !ValidCategoryTypes[categoryType] {
		return nil, ErrInvalidCategoryType
	}
	if color != nil && !hexColorPattern.MatchString(*color) {
		return nil, ErrInvalidColor
	}

	return &Category{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Type:        categoryType,
		Icon:        icon,
		Color:       color,
		IsEssential: isEssential,
	}, nil
}

// Rename changes the category name, re-validating the length rule.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return ErrNameTooShort
	}
	c.Name = name
	return nil
}

// SetColor replaces the display color. A nil color clears it.
func (c *Category) SetColor(color *string) error {
	if color != nil && !hexColorPattern.MatchString(*color) {
		return ErrInvalidColor
	}
	c.Color = color
	return nil
}

// SetIcon replaces the display icon. A nil icon clears it.
func (c *Category) SetIcon(icon *string) {
	c.Icon = icon
}

// SetEssential flags the category as a fixed (non-discretionary) cost.
func (c *Category) SetEssential(essential bool) {
	c.IsEssential = essential
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	GetAllByUser(userID uuid.UUID, categoryType *CategoryType) ([]*Category, error)
	ExistsByUserNameAndType(userID uuid.UUID, name string, categoryType CategoryType) (bool, error)
	Update(category *Category) (*Category, error)
	Delete(id uuid.UUID) error
}
