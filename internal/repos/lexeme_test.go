package repos_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/repos/testutil"
	"github.com/keyvez/vaan-backend/internal/types"
)

func TestBulkInsertSkipsDuplicates(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := repos.NewLexemeRepo(tx, testutil.Logger(t))

	batch := []*types.Lexeme{
		{Sanskrit: "सत्यम्", Transliteration: "satyam", PrimaryMeaning: "truth", RawEntry: "सत्यम् (satyam) = truth"},
		{Sanskrit: "धर्म", Transliteration: "dharma", PrimaryMeaning: "duty", RawEntry: "धर्म (dharma) = duty"},
	}
	inserted, err := repo.BulkInsert(ctx, tx, batch)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	// Re-inserting the same raw entries is a no-op.
	again := []*types.Lexeme{
		{Sanskrit: "सत्यम्", Transliteration: "satyam", PrimaryMeaning: "truth", RawEntry: "सत्यम् (satyam) = truth"},
	}
	inserted, err = repo.BulkInsert(ctx, tx, again)
	if err != nil {
		t.Fatalf("BulkInsert duplicate: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}

	count, err := repo.Count(ctx, tx)
	if err != nil || count != 2 {
		t.Fatalf("Count = %d, %v; want 2", count, err)
	}
}

func TestPickRandomUnusedExcludesLogged(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	log := testutil.Logger(t)
	lexemeRepo := repos.NewLexemeRepo(tx, log)
	wodRepo := repos.NewWordOfDayRepo(tx, log)

	a := testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")
	b := testutil.SeedLexeme(t, ctx, tx, "धर्म", "dharma", "duty")

	if err := wodRepo.AppendLog(ctx, tx, a.ID); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	got, err := lexemeRepo.PickRandomUnused(ctx, tx)
	if err != nil {
		t.Fatalf("PickRandomUnused: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("picked lexeme %d, want %d", got.ID, b.ID)
	}

	if err := wodRepo.AppendLog(ctx, tx, b.ID); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}
	if _, err := lexemeRepo.PickRandomUnused(ctx, tx); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound when all logged, got %v", err)
	}

	if err := wodRepo.ClearLog(ctx, tx); err != nil {
		t.Fatalf("ClearLog: %v", err)
	}
	if _, err := lexemeRepo.PickRandomUnused(ctx, tx); err != nil {
		t.Fatalf("PickRandomUnused after reset: %v", err)
	}
}

func TestGetUncheckedPriorityLetter(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := repos.NewLexemeRepo(tx, testutil.Logger(t))

	testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")
	testutil.SeedLexeme(t, ctx, tx, "धर्म", "dharma", "duty")
	tara := testutil.SeedLexeme(t, ctx, tx, "तारा", "tara", "star")

	got, err := repo.GetUnchecked(ctx, tx, 2, "t")
	if err != nil {
		t.Fatalf("GetUnchecked: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lexemes, want 2", len(got))
	}
	if got[0].ID != tara.ID {
		t.Fatalf("priority letter ignored: first is %q", got[0].Transliteration)
	}

	if err := repo.MarkChecked(ctx, tx, tara.ID); err != nil {
		t.Fatalf("MarkChecked: %v", err)
	}
	got, err = repo.GetUnchecked(ctx, tx, 10, "")
	if err != nil {
		t.Fatalf("GetUnchecked: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("checked lexeme still returned, got %d", len(got))
	}
}

func TestSearchLexemes(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := repos.NewLexemeRepo(tx, testutil.Logger(t))

	testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")
	testutil.SeedLexeme(t, ctx, tx, "धर्म", "dharma", "duty")
	testutil.SeedLexeme(t, ctx, tx, "तारा", "tara", "star")

	got, total, err := repo.Search(ctx, tx, "DHAR", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].Transliteration != "dharma" {
		t.Fatalf("Search(DHAR) = %d results, total %d", len(got), total)
	}

	got, total, err = repo.Search(ctx, tx, "", 2, 0)
	if err != nil {
		t.Fatalf("Search all: %v", err)
	}
	if total != 3 || len(got) != 2 {
		t.Fatalf("Search(all) = %d results, total %d; want 2 of 3", len(got), total)
	}

	got, _, err = repo.Search(ctx, tx, "", 2, 2)
	if err != nil || len(got) != 1 {
		t.Fatalf("Search offset = %d results, %v; want 1", len(got), err)
	}
}
