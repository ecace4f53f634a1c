// Package dto holds the request and response shapes of the authors API.
package dto

import (
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
)

type AuthorDTO struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Bio       string           `json:"bio"`
	Books     []BookSummaryDTO `json:"books,omitempty"`
	CreatedAt model.Date       `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt model.Date       `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type BookSummaryDTO struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PublishedAt *model.Date `json:"published_at,omitempty" swaggertype:"string" example:"2025-11-24"`
}

type AuthorCreateDTO struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
	Bio  string `json:"bio" binding:"omitempty,max=2000"`
}

// AuthorUpdateDTO replaces every mutable field of an author. ID must match
// the id in the request path.
type AuthorUpdateDTO struct {
	ID   uint   `json:"id" binding:"required"`
	Name string `json:"name" binding:"required,notblank,max=100"`
	Bio  string `json:"bio" binding:"omitempty,max=2000"`
}

type CreatedAuthorResponse struct {
	Author AuthorDTO `json:"author"`
}
