package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/dto"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

// Logger receives the outcome of every operation. It never affects the
// response.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type AuthorMapper interface {
	ToDTO(a model.Author) dto.AuthorDTO
	ToDTOs(authors []model.Author) []dto.AuthorDTO
	FromCreate(in dto.AuthorCreateDTO) model.Author
	FromUpdate(in dto.AuthorUpdateDTO) model.Author
}

// AuthorHandler serves /authors. It keeps no per-request state.
type AuthorHandler struct {
	repo   repository.AuthorRepository
	log    Logger
	mapper AuthorMapper
}

func NewAuthorHandler(repo repository.AuthorRepository, log Logger, mapper AuthorMapper) *AuthorHandler {
	return &AuthorHandler{
		repo:   repo,
		log:    log,
		mapper: mapper,
	}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", guard(h.log, h.ListAuthors))
		authors.GET("/:id", guard(h.log, h.GetAuthor))
		authors.POST("", guard(h.log, h.CreateAuthor))
		authors.PUT("/:id", guard(h.log, h.UpdateAuthor))
		authors.DELETE("/:id", guard(h.log, h.DeleteAuthor))
	}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get every author, ordered by id
// @Tags         authors
// @Produce      json
// @Success      200  {array}   dto.AuthorDTO
// @Failure      500  {string}  string  "Something went wrong"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context, log Logger) error {
	log.Info("Attempted to Get All Authors")

	authors, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, h.mapper.ToDTOs(authors))
	log.Info("Successfully got all Authors")
	return nil
}

// GetAuthor godoc
// @Summary      Get author by ID
// @Description  Get a single author and its books
// @Tags         authors
// @Produce      json
// @Param        id   path      int     true  "Author ID"
// @Success      200  {object}  dto.AuthorDTO
// @Failure      400  {string}  string  "invalid request"
// @Failure      404  {string}  string  "not found"
// @Failure      500  {string}  string  "Something went wrong"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context, log Logger) error {
	log.Info("Attempted to Get an author with id: " + c.Param("id"))

	id, ok := pathID(c)
	if !ok {
		log.Warn("Author Get failed with bad id: " + c.Param("id"))
		badRequest(c)
		return nil
	}

	var author *model.Author
	if id >= 1 {
		var err error
		author, err = h.repo.FindByID(c.Request.Context(), uint(id))
		if err != nil {
			return err
		}
	}
	if author == nil {
		log.Warn(fmt.Sprintf("Author with id: %d was not found", id))
		notFound(c)
		return nil
	}

	c.JSON(http.StatusOK, h.mapper.ToDTO(*author))
	log.Info(fmt.Sprintf("Successfully got Author with id: %d", id))
	return nil
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create a new author with a name and optional bio
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.AuthorCreateDTO        true  "Author to create"
// @Success      201      {object}  dto.CreatedAuthorResponse
// @Failure      400      {string}  string  "invalid request"
// @Failure      500      {string}  string  "Something went wrong"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context, log Logger) error {
	log.Info("Author Submission attempted")

	var in dto.AuthorCreateDTO
	if err := validation.DecodeJSON(c, &in); err != nil {
		if errors.Is(err, validation.ErrEmptyBody) {
			log.Warn("Empty Request was submitted")
		} else {
			log.Warn("Author Submission failed with bad data: " + err.Error())
		}
		badRequest(c)
		return nil
	}

	if err := validation.Struct(&in); err != nil {
		log.Warn("Author data was incomplete: " + validation.Summary(err))
		badRequest(c)
		return nil
	}

	author := h.mapper.FromCreate(in)
	created, err := h.repo.Create(c.Request.Context(), &author)
	if err != nil {
		return err
	}
	if !created {
		internalError(c, log, "Author creation failed")
		return nil
	}

	log.Info(fmt.Sprintf("Author with id: %d created", author.ID))
	c.Header("Location", fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request.URL.Path, "/"), author.ID))
	c.JSON(http.StatusCreated, dto.CreatedAuthorResponse{Author: h.mapper.ToDTO(author)})
	return nil
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Replace name and bio of an existing author. The body id must match the path id.
// @Tags         authors
// @Accept       json
// @Param        id       path      int                  true  "Author ID"
// @Param        payload  body      dto.AuthorUpdateDTO  true  "Replacement author"
// @Success      204      "No Content"
// @Failure      400      {string}  string  "invalid request"
// @Failure      404      {string}  string  "not found"
// @Failure      500      {string}  string  "Something went wrong"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context, log Logger) error {
	log.Info("Author with id: " + c.Param("id") + " update attempted")

	id, ok := pathID(c)
	if !ok || id < 1 {
		log.Warn("Author Update failed with bad data")
		badRequest(c)
		return nil
	}

	var in dto.AuthorUpdateDTO
	if err := validation.DecodeJSON(c, &in); err != nil || uint(id) != in.ID {
		log.Warn("Author Update failed with bad data")
		badRequest(c)
		return nil
	}

	exists, err := h.repo.Exists(c.Request.Context(), uint(id))
	if err != nil {
		return err
	}
	if !exists {
		log.Warn(fmt.Sprintf("Author with id: %d was not found", id))
		notFound(c)
		return nil
	}

	if err := validation.Struct(&in); err != nil {
		log.Warn("Author data was incomplete: " + validation.Summary(err))
		badRequest(c)
		return nil
	}

	author := h.mapper.FromUpdate(in)
	updated, err := h.repo.Update(c.Request.Context(), &author)
	if err != nil {
		return err
	}
	if !updated {
		internalError(c, log, "Update Operation failed")
		return nil
	}

	log.Info(fmt.Sprintf("Author with id: %d successfully updated", id))
	c.Status(http.StatusNoContent)
	return nil
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author and its books
// @Tags         authors
// @Param        id   path      int     true  "Author ID"
// @Success      204  "No Content"
// @Failure      400  {string}  string  "invalid request"
// @Failure      404  {string}  string  "not found"
// @Failure      500  {string}  string  "Something went wrong"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context, log Logger) error {
	log.Info("Author with id: " + c.Param("id") + " delete attempted")

	id, ok := pathID(c)
	if !ok || id < 1 {
		log.Warn("Author Delete failed with bad data")
		badRequest(c)
		return nil
	}

	author, err := h.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		return err
	}
	if author == nil {
		log.Warn(fmt.Sprintf("Author with id: %d was not found", id))
		notFound(c)
		return nil
	}

	deleted, err := h.repo.Delete(c.Request.Context(), author)
	if err != nil {
		return err
	}
	if !deleted {
		internalError(c, log, "Author Delete failed")
		return nil
	}

	log.Info(fmt.Sprintf("Author with id: %d successfully deleted", id))
	c.Status(http.StatusNoContent)
	return nil
}
