package sqlite_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
)

func TestStoreRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner, store := createStore(t, db, "owner", "Mercado Ñandú")
	createUser(t, db, "personal", "Personal")

	got, err := db.Stores().GetByID(ctx, store.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.OwnerID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, got.OwnerID)
	}

	phone := "555-0101"
	updated, err := db.Stores().Update(ctx, store.ID, domain.StoreUpdate{Phone: &phone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phone != phone || updated.Name != "Mercado Ñandú" || updated.City != "Lima" {
		t.Fatalf("expected only phone to change, got %+v", updated)
	}

	found, err := db.Stores().SearchByName(ctx, "ñANDÚ")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(found) != 1 || found[0].ID != store.ID {
		t.Fatalf("expected the store, got %+v", found)
	}

	if _, err := db.Stores().GetByID(ctx, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID missing: expected ErrNotFound, got %v", err)
	}
	if _, err := db.Stores().Update(ctx, 99999, domain.StoreUpdate{Phone: &phone}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	personal, _ := db.Users().GetByEmail(ctx, "personal@example.com")
	if _, err := db.Stores().GetByOwner(ctx, personal.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByOwner of personal account: expected ErrNotFound, got %v", err)
	}
}

func TestProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := db.Products()
	ctx := context.Background()
	_, store := createStore(t, db, "owner", "Shop")

	var created []*domain.Product
	for _, name := range []string{"Rice", "Beans", "Oil"} {
		p := &domain.Product{StoreID: store.ID, Name: name, Category: "Groceries", Price: 2.5}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		created = append(created, p)
	}

	all, err := repo.ListByStore(ctx, store.ID, 0)
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Oil" {
		t.Fatalf("expected 3 products newest first, got %+v", all)
	}
	limited, err := repo.ListByStore(ctx, store.ID, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("ListByStore limit 2 = %d, %v", len(limited), err)
	}

	price := 3.75
	image := "/uploads/products/rice.png"
	updated, err := repo.Update(ctx, created[0].ID, domain.ProductUpdate{Price: &price, Image: &image})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 3.75 || updated.Image != image || updated.Name != "Rice" {
		t.Fatalf("unexpected product %+v", updated)
	}

	if err := repo.Delete(ctx, created[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, created[1].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, created[1].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID deleted: expected ErrNotFound, got %v", err)
	}

	err = repo.Create(ctx, &domain.Product{StoreID: 99999, Name: "Ghost", Category: "None", Price: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown store: expected ErrNotFound, got %v", err)
	}
}

func TestPromotionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := db.Promotions()
	ctx := context.Background()
	_, store := createStore(t, db, "owner", "Shop")

	starts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	promo := &domain.Promotion{StoreID: store.ID, ProductIDs: []int64{7, 9}, Title: "January", StartsAt: starts, EndsAt: ends}
	if err := repo.Create(ctx, promo); err != nil {
		t.Fatalf("Create: %v", err)
	}
	later := &domain.Promotion{StoreID: store.ID, Title: "February", StartsAt: starts.AddDate(0, 1, 0), EndsAt: ends.AddDate(0, 1, 0)}
	if err := repo.Create(ctx, later); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(list) != 2 || list[0].Title != "February" {
		t.Fatalf("expected latest start first, got %+v", list)
	}
	if list[0].ProductIDs == nil || len(list[0].ProductIDs) != 0 {
		t.Fatalf("expected empty product list, got %#v", list[0].ProductIDs)
	}
	if !slices.Equal(list[1].ProductIDs, []int64{7, 9}) || !list[1].StartsAt.Equal(starts) {
		t.Fatalf("unexpected promotion %+v", list[1])
	}

	ids := []int64{1}
	title := "January sale"
	updated, err := repo.Update(ctx, promo.ID, domain.PromotionUpdate{ProductIDs: &ids, Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !slices.Equal(updated.ProductIDs, ids) || updated.Title != title || !updated.EndsAt.Equal(ends) {
		t.Fatalf("unexpected promotion %+v", updated)
	}

	if err := repo.Delete(ctx, promo.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Update(ctx, promo.ID, domain.PromotionUpdate{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update deleted: expected ErrNotFound, got %v", err)
	}
}
