package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/service"
)

// CatalogHandler handles stores, products, and promotions.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleGetCatalog returns a store with its products and promotions.
// GET /api/store/{id}/catalog
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid store id.")
		return
	}

	catalog, err := h.catalog.Get(r.Context(), storeID)
	if err != nil {
		writeServiceError(w, "get catalog", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"store":      toStoreDTO(catalog.Store),
		"products":   toProductDTOs(catalog.Products),
		"promotions": toPromotionDTOs(catalog.Promotions),
	})
}

// HandleUpdateStore edits the supplied store fields.
// PUT /api/store/{id}
func (h *CatalogHandler) HandleUpdateStore(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid store id.")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		District *string `json:"district"`
		City     *string `json:"city"`
		Phone    *string `json:"phone"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	store, err := h.catalog.UpdateStore(r.Context(), storeID, domain.StoreUpdate{
		Name:     req.Name,
		Address:  req.Address,
		District: req.District,
		City:     req.City,
		Phone:    req.Phone,
	})
	if err != nil {
		writeServiceError(w, "update store", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Store updated.",
		"store":   toStoreDTO(store),
	})
}

// HandleCreateProduct adds a product, optionally with an image in the
// multipart field "image".
// POST /api/products
func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreID  flexInt   `json:"storeId"`
		Name     string    `json:"name"`
		Category string    `json:"category"`
		Brand    string    `json:"brand"`
		Unit     string    `json:"unit"`
		Price    flexFloat `json:"price"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	image, err := readUpload(r, "image")
	if err != nil {
		writeBodyError(w, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.CreateProductInput{
		StoreID:  int64(req.StoreID),
		Name:     req.Name,
		Category: req.Category,
		Brand:    req.Brand,
		Unit:     req.Unit,
		Price:    float64(req.Price),
	}, image)
	if err != nil {
		writeServiceError(w, "create product", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created.",
		"product": toProductDTO(*product),
	})
}

// HandleUpdateProduct edits the supplied product fields.
// PUT /api/products/{id}
func (h *CatalogHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id.")
		return
	}

	var req struct {
		Name     *string    `json:"name"`
		Category *string    `json:"category"`
		Brand    *string    `json:"brand"`
		Unit     *string    `json:"unit"`
		Price    *flexFloat `json:"price"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	image, err := readUpload(r, "image")
	if err != nil {
		writeBodyError(w, err)
		return
	}

	in := service.UpdateProductInput{
		Name:     req.Name,
		Category: req.Category,
		Brand:    req.Brand,
		Unit:     req.Unit,
	}
	if req.Price != nil {
		price := float64(*req.Price)
		in.Price = &price
	}

	product, err := h.catalog.UpdateProduct(r.Context(), productID, in, image)
	if err != nil {
		writeServiceError(w, "update product", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated.",
		"product": toProductDTO(*product),
	})
}

// HandleDeleteProduct removes a product. Promotions listing it are left as is.
// DELETE /api/products/{id}
func (h *CatalogHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id.")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, "delete product", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Product deleted."})
}

// HandleCreatePromotion adds a promotion to a store.
// POST /api/promotions
// Request: {"storeId":1,"products":[1,2],"title":"...","startsAt":"2026-01-01","endsAt":"2026-01-31"}
func (h *CatalogHandler) HandleCreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreID  flexInt  `json:"storeId"`
		Products flexIDs  `json:"products"`
		Title    string   `json:"title"`
		StartsAt flexTime `json:"startsAt"`
		EndsAt   flexTime `json:"endsAt"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	promotion, err := h.catalog.CreatePromotion(r.Context(), service.CreatePromotionInput{
		StoreID:    int64(req.StoreID),
		ProductIDs: req.Products,
		Title:      req.Title,
		StartsAt:   time.Time(req.StartsAt),
		EndsAt:     time.Time(req.EndsAt),
	})
	if err != nil {
		writeServiceError(w, "create promotion", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Promotion created.",
		"promotion": toPromotionDTO(*promotion),
	})
}

// HandleUpdatePromotion edits the supplied promotion fields.
// PUT /api/promotions/{id}
func (h *CatalogHandler) HandleUpdatePromotion(w http.ResponseWriter, r *http.Request) {
	promotionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid promotion id.")
		return
	}

	var req struct {
		Products *flexIDs  `json:"products"`
		Title    *string   `json:"title"`
		StartsAt *flexTime `json:"startsAt"`
		EndsAt   *flexTime `json:"endsAt"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	var update domain.PromotionUpdate
	update.Title = req.Title
	if req.Products != nil {
		ids := []int64(*req.Products)
		update.ProductIDs = &ids
	}
	if req.StartsAt != nil && !time.Time(*req.StartsAt).IsZero() {
		t := time.Time(*req.StartsAt)
		update.StartsAt = &t
	}
	if req.EndsAt != nil && !time.Time(*req.EndsAt).IsZero() {
		t := time.Time(*req.EndsAt)
		update.EndsAt = &t
	}

	promotion, err := h.catalog.UpdatePromotion(r.Context(), promotionID, update)
	if err != nil {
		writeServiceError(w, "update promotion", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Promotion updated.",
		"promotion": toPromotionDTO(*promotion),
	})
}

// HandleDeletePromotion removes a promotion.
// DELETE /api/promotions/{id}
func (h *CatalogHandler) HandleDeletePromotion(w http.ResponseWriter, r *http.Request) {
	promotionID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid promotion id.")
		return
	}

	if err := h.catalog.DeletePromotion(r.Context(), promotionID); err != nil {
		writeServiceError(w, "delete promotion", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Promotion deleted."})
}
