package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/mapper"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/testutil"
	"gorm.io/gorm"
)

type logEntry struct {
	Level string
	Msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{Level: level, Msg: msg})
}

func (l *recordingLogger) Info(msg string)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string) { l.add("error", msg) }

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Level)
	}
	return out
}

func (l *recordingLogger) has(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) first() logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return logEntry{}
	}
	return l.entries[0]
}

// fakeAuthorRepo counts every call so tests can assert the repository was
// never reached.
type fakeAuthorRepo struct {
	FindAllFn  func(ctx context.Context) ([]model.Author, error)
	FindByIDFn func(ctx context.Context, id uint) (*model.Author, error)
	ExistsFn   func(ctx context.Context, id uint) (bool, error)
	CreateFn   func(ctx context.Context, a *model.Author) (bool, error)
	UpdateFn   func(ctx context.Context, a *model.Author) (bool, error)
	DeleteFn   func(ctx context.Context, a *model.Author) (bool, error)

	calls int
}

func (f *fakeAuthorRepo) FindAll(ctx context.Context) ([]model.Author, error) {
	f.calls++
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id uint) (*model.Author, error) {
	f.calls++
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAuthorRepo) Exists(ctx context.Context, id uint) (bool, error) {
	f.calls++
	if f.ExistsFn != nil {
		return f.ExistsFn(ctx, id)
	}
	return false, nil
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *model.Author) (bool, error) {
	f.calls++
	if f.CreateFn != nil {
		return f.CreateFn(ctx, a)
	}
	a.ID = 1
	return true, nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *model.Author) (bool, error) {
	f.calls++
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, a)
	}
	return true, nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, a *model.Author) (bool, error) {
	f.calls++
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, a)
	}
	return true, nil
}

func setupAuthorRouterWithRepo(repo repository.AuthorRepository) (*gin.Engine, *recordingLogger) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	log := &recordingLogger{}
	h := NewAuthorHandler(repo, log, mapper.New())
	h.RegisterRoutes(r.Group("/api"))

	return r, log
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *recordingLogger) {
	t.Helper()

	db := testutil.NewTestDB(t)
	r, log := setupAuthorRouterWithRepo(repository.NewAuthorRepository(db))
	return r, db, log
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authorPath(id any) string {
	return fmt.Sprintf("/api/authors/%v", id)
}

func newUnmigratedRepo(t *testing.T) *repository.GormAuthorRepository {
	t.Helper()
	return repository.NewAuthorRepository(testutil.NewUnmigratedDB(t))
}
