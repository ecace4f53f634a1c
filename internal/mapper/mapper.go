// Package mapper converts between persisted authors and their API shapes.
package mapper

import (
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/dto"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
)

// Mapper is stateless; the zero value is ready to use.
type Mapper struct{}

func New() Mapper {
	return Mapper{}
}

func (Mapper) ToDTO(a model.Author) dto.AuthorDTO {
	var books []dto.BookSummaryDTO
	if len(a.Books) > 0 {
		books = make([]dto.BookSummaryDTO, 0, len(a.Books))
		for _, b := range a.Books {
			books = append(books, toBookSummary(b))
		}
	}

	return dto.AuthorDTO{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		Books:     books,
		CreatedAt: model.Date{Time: a.CreatedAt},
		UpdatedAt: model.Date{Time: a.UpdatedAt},
	}
}

// ToDTOs never returns nil so an empty store renders as [].
func (m Mapper) ToDTOs(authors []model.Author) []dto.AuthorDTO {
	res := make([]dto.AuthorDTO, 0, len(authors))
	for _, a := range authors {
		res = append(res, m.ToDTO(a))
	}
	return res
}

func (Mapper) FromCreate(in dto.AuthorCreateDTO) model.Author {
	return model.Author{
		Name: in.Name,
		Bio:  in.Bio,
	}
}

func (Mapper) FromUpdate(in dto.AuthorUpdateDTO) model.Author {
	return model.Author{
		ID:   in.ID,
		Name: in.Name,
		Bio:  in.Bio,
	}
}

func toBookSummary(b model.Book) dto.BookSummaryDTO {
	return dto.BookSummaryDTO{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		PublishedAt: model.DateOf(b.PublishedAt),
	}
}
