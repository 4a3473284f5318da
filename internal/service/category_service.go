package service

import (
	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, transactionRepo: transactionRepo}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name        string
	Type        domain.CategoryType
	Icon        *string
	Color       *string
	IsEssential bool
}

// UpdateCategoryInput holds the input for updating a category.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string
	Icon        *string
	Color       *string
	IsEssential *bool
}

// Create creates a new category for the user. The name must be unique
// within the user's categories of the same type.
func (s *CategoryService) Create(userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(userID, input.Name, input.Type, input.Icon, input.Color, input.IsEssential)
	if err != nil {
		return nil, err
	}

	taken, err := s.categoryRepo.ExistsByUserNameAndType(userID, category.Name, category.Type)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrCategoryNameTaken
	}

	return s.categoryRepo.Create(category)
}

// Get returns a category owned by the user
func (s *CategoryService) Get(userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return category, nil
}

// List returns the user's categories, optionally filtered by type
func (s *CategoryService) List(userID uuid.UUID, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	if categoryType != nil && !domain.ValidCategoryTypes[*categoryType] {
		return nil, domain.ErrInvalidCategoryType
	}
	return s.categoryRepo.GetAllByUser(userID, categoryType)
}

// Update applies a partial update to a category owned by the user
func (s *CategoryService) Update(userID, categoryID uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.Get(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		if err := category.Rename(*input.Name); err != nil {
			return nil, err
		}
		taken, err := s.categoryRepo.ExistsByUserNameAndType(userID, category.Name, category.Type)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrCategoryNameTaken
		}
	}
	if input.Icon != nil {
		category.SetIcon(input.Icon)
	}
	if input.Color != nil {
		if err := category.SetColor(input.Color); err != nil {
			return nil, err
		}
	}
	if input.IsEssential != nil {
		category.SetEssential(*input.IsEssential)
	}

	return s.categoryRepo.Update(category)
}

// Delete removes a category owned by the user. Categories with
// transactions cannot be deleted.
func (s *CategoryService) Delete(userID, categoryID uuid.UUID) error {
	if _, err := s.Get(userID, categoryID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByCategory(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryHasTransactions
	}

	return s.categoryRepo.Delete(categoryID)
}
