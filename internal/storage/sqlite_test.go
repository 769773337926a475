package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/worldjourney/platoo/internal/models"
)

func newTestStore(t *testing.T) *PlaceStore {
	t.Helper()
	store, err := NewPlaceStore(filepath.Join(t.TempDir(), "places.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := &models.GazetteerEntry{
		Name:       "ตลาดน้ำอัมพวา",
		Aliases:    []string{"อัมพวา", "Amphawa"},
		Province:   "สมุทรสงคราม",
		Popularity: 95,
		Attractions: []models.Attraction{
			{Name: "ล่องเรือชมหิ่งห้อย", Popularity: 80},
		},
	}
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatal(err)
	}
	if e.ID == "" {
		t.Fatal("Upsert must assign an ID")
	}

	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != e.Name || got.Province != e.Province || got.Popularity != e.Popularity {
		t.Errorf("got %+v", got)
	}
	if len(got.Aliases) != 2 || got.Aliases[0] != "อัมพวา" {
		t.Errorf("aliases = %v", got.Aliases)
	}
	if len(got.Attractions) != 1 || got.Attractions[0].Name != "ล่องเรือชมหิ่งห้อย" {
		t.Errorf("attractions = %v", got.Attractions)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := &models.GazetteerEntry{Name: "วัดบางกุ้ง", Province: "สมุทรสงคราม", Popularity: 70}
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatal(err)
	}
	e.Popularity = 75
	if err := store.Upsert(ctx, e); err != nil {
		t.Fatal(err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1 after re-upsert", n)
	}
	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Popularity != 75 {
		t.Errorf("popularity = %v, want updated 75", got.Popularity)
	}
}

func TestList_OrdersByPopularity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []*models.GazetteerEntry{
		{Name: "คลองโคน", Popularity: 40},
		{Name: "ตลาดน้ำอัมพวา", Popularity: 95},
		{Name: "วัดบางกุ้ง", Popularity: 70},
	}
	if err := store.UpsertAll(ctx, entries); err != nil {
		t.Fatal(err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("list length = %d, want 3", len(got))
	}
	if got[0].Name != "ตลาดน้ำอัมพวา" || got[2].Name != "คลองโคน" {
		t.Errorf("order = %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestUpsert_RejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	if err := store.Upsert(context.Background(), &models.GazetteerEntry{Name: ""}); err == nil {
		t.Error("expected error for entry without a name")
	}
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "place:missing"); err == nil {
		t.Error("expected error for unknown ID")
	}
}
