package testutil

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/types"
)

func SeedLexeme(tb testing.TB, ctx context.Context, tx *gorm.DB, sanskrit, translit, meaning string) *types.Lexeme {
	tb.Helper()
	l := &types.Lexeme{
		Sanskrit:        sanskrit,
		Transliteration: translit,
		PrimaryMeaning:  meaning,
		EnglishMeanings: fmt.Sprintf(`[%q]`, meaning),
		RawEntry:        fmt.Sprintf("%s (%s) = %s", sanskrit, translit, meaning),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lexeme: %v", err)
	}
	return l
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, id, email string, admin bool) *types.User {
	tb.Helper()
	u := &types.User{
		ID:      id,
		Email:   email,
		Name:    "Test User",
		IsAdmin: admin,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedBabyName(tb testing.TB, ctx context.Context, tx *gorm.DB, name, slug, gender string, lexemeID uint) *types.BabyName {
	tb.Helper()
	bn := &types.BabyName{
		Name:        name,
		Slug:        slug,
		Gender:      gender,
		Meaning:     "meaning of " + name,
		FirstLetter: firstLetter(name),
		LexemeID:    lexemeID,
	}
	if err := tx.WithContext(ctx).Create(bn).Error; err != nil {
		tb.Fatalf("seed baby name: %v", err)
	}
	return bn
}

func SeedTranslationKey(tb testing.TB, ctx context.Context, tx *gorm.DB, key, source string) *types.TranslationKey {
	tb.Helper()
	tk := &types.TranslationKey{TranslationKey: key, SourceText: source}
	if err := tx.WithContext(ctx).Create(tk).Error; err != nil {
		tb.Fatalf("seed translation key: %v", err)
	}
	return tk
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
