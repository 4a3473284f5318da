package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsEssential bool    `json:"isEssential"`
}

// UpdateCategoryRequest represents the update category request body
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsEssential *bool   `json:"isEssential,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsEssential bool    `json:"isEssential"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Create(userID, service.CreateCategoryInput{
		Name:        req.Name,
		Type:        domain.CategoryType(req.Type),
		Icon:        req.Icon,
		Color:       req.Color,
		IsEssential: req.IsEssential,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			return NewConflictError(c, "A category with this name and type already exists")
		}
		if validationErr := categoryValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("user_id", userID.String()).Str("category_id", category.ID.String()).Str("name", category.Name).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var categoryType *domain.CategoryType
	if t := c.QueryParam("type"); t != "" {
		ct := domain.CategoryType(t)
		categoryType = &ct
	}

	categories, err := h.categoryService.List(userID, categoryType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategoryType) {
			return NewValidationError(c, "Invalid category type", []ValidationError{
				{Field: "type", Message: "Type must be INCOME or EXPENSE"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}

	return c.JSON(http.StatusOK, response)
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	category, err := h.categoryService.Get(userID, id)
	if err != nil {
		return categoryLookupError(c, err, userID, id)
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// UpdateCategory handles PATCH /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Update(userID, id, service.UpdateCategoryInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		IsEssential: req.IsEssential,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			return NewConflictError(c, "A category with this name and type already exists")
		}
		if validationErr := categoryValidationError(c, err); validationErr != nil {
			return validationErr
		}
		return categoryLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("category_id", category.ID.String()).Msg("Category updated")
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrCategoryHasTransactions) {
			return NewConflictError(c, "Category has transactions and cannot be deleted")
		}
		return categoryLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("category_id", id.String()).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

// categoryValidationError maps domain validation errors to 400 responses.
// Returns nil for errors it does not recognize.
func categoryValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNameTooShort) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be at least 2 characters"},
		})
	}
	if errors.Is(err, domain.ErrInvalidCategoryType) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be INCOME or EXPENSE"},
		})
	}
	if errors.Is(err, domain.ErrInvalidColor) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "color", Message: "Color must be a hex value like #RGB or #RRGGBB"},
		})
	}
	return nil
}

// categoryLookupError maps not-found/forbidden errors from a category fetch
func categoryLookupError(c echo.Context, err error, userID, categoryID uuid.UUID) error {
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return NewNotFoundError(c, "Category not found")
	}
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, "Category belongs to another user")
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("category_id", categoryID.String()).Msg("Category operation failed")
	return NewInternalError(c, "Category operation failed")
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Type:        string(category.Type),
		Icon:        category.Icon,
		Color:       category.Color,
		IsEssential: category.IsEssential,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}
