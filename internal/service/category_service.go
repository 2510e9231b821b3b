package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// CategoryService manages categorias.
type CategoryService struct {
	repo  repository.CategoryRepository
	audit *AuditService
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository, audit *AuditService) *CategoryService {
	return &CategoryService{repo: repo, audit: audit}
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name        string
	Description string
}

// List returns all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// Get fetches one category.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create registers a category.
func (s *CategoryService) Create(actorID uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	category := models.Category{Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableCategories,
		RecordID:  &category.ID,
		NewValues: categorySnapshot(&category),
	})
	return &category, nil
}

// Update edits a category.
func (s *CategoryService) Update(actorID, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if name != category.Name {
		existing, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicate
		}
	}

	before := categorySnapshot(category)
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableCategories,
		RecordID:  &category.ID,
		OldValues: before,
		NewValues: categorySnapshot(category),
	})
	return category, nil
}

// Delete removes a category. Categories still referenced by products are
// refused.
func (s *CategoryService) Delete(actorID, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	before := categorySnapshot(category)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableCategories,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

func categorySnapshot(category *models.Category) map[string]interface{} {
	return map[string]interface{}{
		"nombre":      category.Name,
		"descripcion": category.Description,
	}
}
