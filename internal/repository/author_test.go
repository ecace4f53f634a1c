package repository

import (
	"context"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/testutil"
)

func TestGormAuthorRepository_FindAll_OrderedWithBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)

	a1 := testutil.SeedAuthor(t, db, "Author One")
	a2 := testutil.SeedAuthor(t, db, "Author Two")
	testutil.SeedBook(t, db, a1, "Clean Code", nil)
	testutil.SeedBook(t, db, a1, "Clean Architecture", nil)
	testutil.SeedBook(t, db, a2, "Domain-Driven Design", nil)

	authors, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}

	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	if authors[0].ID != a1.ID || authors[1].ID != a2.ID {
		t.Fatalf("unexpected order: got [%d, %d]", authors[0].ID, authors[1].ID)
	}
	if len(authors[0].Books) != 2 || len(authors[1].Books) != 1 {
		t.Fatalf("expected books preloaded as 2/1, got %d/%d", len(authors[0].Books), len(authors[1].Books))
	}
}

func TestGormAuthorRepository_FindAll_Empty(t *testing.T) {
	repo := NewAuthorRepository(testutil.NewTestDB(t))

	authors, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(authors) != 0 {
		t.Fatalf("expected no authors, got %d", len(authors))
	}
}

func TestGormAuthorRepository_FindByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Found")

	got, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got == nil || got.Name != "Found" {
		t.Fatalf("expected author %q, got %+v", "Found", got)
	}

	missing, err := repo.FindByID(ctx, seeded.ID+100)
	if err != nil {
		t.Fatalf("FindByID on missing id returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing author, got %+v", missing)
	}
}

func TestGormAuthorRepository_Exists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Exists")

	ok, err := repo.Exists(ctx, seeded.ID)
	if err != nil || !ok {
		t.Fatalf("expected author to exist, got ok=%v err=%v", ok, err)
	}

	ok, err = repo.Exists(ctx, seeded.ID+1)
	if err != nil || ok {
		t.Fatalf("expected author not to exist, got ok=%v err=%v", ok, err)
	}
}

func TestGormAuthorRepository_Create_AssignsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)

	author := model.Author{Name: "Jane", Bio: "Writes"}
	ok, err := repo.Create(context.Background(), &author)
	if err != nil || !ok {
		t.Fatalf("expected create to succeed, got ok=%v err=%v", ok, err)
	}
	if author.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	var stored model.Author
	if err := db.First(&stored, author.ID).Error; err != nil {
		t.Fatalf("expected author in db: %v", err)
	}
	if stored.Name != "Jane" {
		t.Errorf("expected stored name Jane, got %q", stored.Name)
	}
}

func TestGormAuthorRepository_Update_ReplacesFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Before")

	ok, err := repo.Update(ctx, &model.Author{ID: seeded.ID, Name: "After", Bio: ""})
	if err != nil || !ok {
		t.Fatalf("expected update to succeed, got ok=%v err=%v", ok, err)
	}

	var stored model.Author
	if err := db.First(&stored, seeded.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Name != "After" {
		t.Errorf("expected name After, got %q", stored.Name)
	}
	if stored.Bio != "" {
		t.Errorf("expected bio cleared, got %q", stored.Bio)
	}
}

func TestGormAuthorRepository_Update_MissingReturnsFalse(t *testing.T) {
	repo := NewAuthorRepository(testutil.NewTestDB(t))

	ok, err := repo.Update(context.Background(), &model.Author{ID: 999, Name: "Ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing author")
	}
}

func TestGormAuthorRepository_Delete_RemovesBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedAuthor(t, db, "Doomed")
	testutil.SeedBook(t, db, seeded, "Last Words", nil)

	ok, err := repo.Delete(ctx, &seeded)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got ok=%v err=%v", ok, err)
	}

	var authors, books int64
	db.Model(&model.Author{}).Count(&authors)
	db.Model(&model.Book{}).Where("author_id = ?", seeded.ID).Count(&books)
	if authors != 0 || books != 0 {
		t.Fatalf("expected author and books removed, got authors=%d books=%d", authors, books)
	}

	ok, err = repo.Delete(ctx, &seeded)
	if err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected second delete to report false")
	}
}

func TestGormAuthorRepository_NilOrZeroID(t *testing.T) {
	repo := NewAuthorRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	if ok, err := repo.Create(ctx, nil); ok || err != nil {
		t.Errorf("Create(nil): expected false,nil got %v,%v", ok, err)
	}
	if ok, err := repo.Update(ctx, &model.Author{}); ok || err != nil {
		t.Errorf("Update(zero id): expected false,nil got %v,%v", ok, err)
	}
	if ok, err := repo.Delete(ctx, nil); ok || err != nil {
		t.Errorf("Delete(nil): expected false,nil got %v,%v", ok, err)
	}
}

func TestGormAuthorRepository_ErrorsAreWrapped(t *testing.T) {
	repo := NewAuthorRepository(testutil.NewUnmigratedDB(t))
	ctx := context.Background()

	if _, err := repo.FindAll(ctx); err == nil {
		t.Errorf("FindAll: expected error without schema")
	}
	if _, err := repo.FindByID(ctx, 1); err == nil {
		t.Errorf("FindByID: expected error without schema")
	}
	if _, err := repo.Exists(ctx, 1); err == nil {
		t.Errorf("Exists: expected error without schema")
	}
	if _, err := repo.Create(ctx, &model.Author{Name: "x"}); err == nil {
		t.Errorf("Create: expected error without schema")
	}
}
