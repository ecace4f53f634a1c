package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/gorm"
)

// AuthorRepository is the persistence contract of the authors endpoint.
// A false result with a nil error means the store refused the write.
type AuthorRepository interface {
	FindAll(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id uint) (*model.Author, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, author *model.Author) (bool, error)
	Update(ctx context.Context, author *model.Author) (bool, error)
	Delete(ctx context.Context, author *model.Author) (bool, error)
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) FindAll(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Preload("Books").
		Order("id ASC").
		Find(&authors).Error; err != nil {

		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// FindByID returns nil, nil when no author has the given id.
func (r *GormAuthorRepository) FindByID(ctx context.Context, id uint) (*model.Author, error) {
	var author model.Author
	err := r.db.WithContext(ctx).
		Preload("Books").
		First(&author, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author %d: %w", id, err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {

		return false, fmt.Errorf("check author %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) (bool, error) {
	if author == nil {
		return false, nil
	}

	result := r.db.WithContext(ctx).Create(author)
	if result.Error != nil {
		return false, fmt.Errorf("create author: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Update replaces name and bio. A map is used so empty values are written.
func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) (bool, error) {
	if author == nil || author.ID == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"name": author.Name,
			"bio":  author.Bio,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update author %d: %w", author.ID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the author together with its books.
func (r *GormAuthorRepository) Delete(ctx context.Context, author *model.Author) (bool, error) {
	if author == nil || author.ID == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Select("Books").
		Delete(&model.Author{ID: author.ID})
	if result.Error != nil {
		return false, fmt.Errorf("delete author %d: %w", author.ID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
