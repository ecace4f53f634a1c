package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/middleware"
)

const (
	msgBadRequest    = "invalid request"
	msgNotFound      = "not found"
	msgInternalError = "Something went wrong"
)

// operation is a handler body. A returned error is an unexpected failure.
type operation func(c *gin.Context, log Logger) error

// taggable loggers can derive a child that stamps every message with a field.
type taggable interface {
	With(key, value string) logger.Logger
}

// requestLogger binds base to the request id when both are available.
func requestLogger(c *gin.Context, base Logger) Logger {
	id := c.GetString(middleware.RequestIDKey)
	if id == "" {
		return base
	}
	if t, ok := base.(taggable); ok {
		return t.With(middleware.RequestIDKey, id)
	}
	return base
}

// guard runs op inside the per-request error boundary: returned errors and
// panics are logged and turned into a generic 500.
func guard(base Logger, op operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := requestLogger(c, base)

		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				internalError(c, log, describe(err))
			}
		}()

		if err := op(c, log); err != nil {
			internalError(c, log, describe(err))
		}
	}
}

// describe renders "<message> - <cause>", the cause being empty when err
// wraps nothing.
func describe(err error) string {
	inner := ""
	if cause := errors.Unwrap(err); cause != nil {
		inner = cause.Error()
	}
	return fmt.Sprintf("%s - %s", err.Error(), inner)
}

func internalError(c *gin.Context, log Logger, msg string) {
	log.Error(msg)
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, msgInternalError)
}

func badRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, msgBadRequest)
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, msgNotFound)
}
