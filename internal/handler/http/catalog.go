// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/service"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

const (
	productsPath = "/api/products"

	// productsPrefsKey names the listing preferences of the product page.
	productsPrefsKey = "order_products_show"
)

// productsResponse is a product page together with the preferences it was
// rendered with, so the client can reflect them in its controls.
type productsResponse struct {
	models.ProductPage
	Preferences models.ViewPreferences `json:"preferences"`
}

// listProducts serves one page of the catalog. Query parameters update the
// remembered listing preferences before the page is fetched.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prefs := h.services.PreferencesService.Load(sess, productsPrefsKey, r.URL.Query())

	page, err := h.services.CatalogService.FetchPage(ctx, prefs.SortOrder, pageParam(r), prefs.PageSize, prefs.Filters)
	if err != nil {
		// a rejected order clause must not stick to the session
		if errors.Is(err, store.ErrInvalidOrderColumn) || errors.Is(err, store.ErrInvalidOrderDirection) {
			h.services.PreferencesService.Reset(sess, productsPrefsKey)
		}
		writeError(w, r, err)
		return
	}

	h.services.CatalogService.AttachImages(ctx, page.Items, service.ListingImageSize(prefs.ViewType))

	utils.WriteJSON(w, productsResponse{ProductPage: page, Preferences: prefs}, http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := int64URLParam(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.services.CatalogService.FindProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail := models.ProductDetail{Product: product, MaxQuantity: h.maxQuantity}
	if cart := sess.Cart(); cart != nil && cart.ProductExists(productID) {
		detail.InCart = true
		detail.CartQuantity = cart.ProductQuantity(productID)
	}

	utils.WriteJSON(w, detail, http.StatusOK)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	forest, err := h.services.CategoryService.Forest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if forest == nil {
		forest = []*models.CategoryNode{}
	}

	utils.WriteJSON(w, forest, http.StatusOK)
}

// categoryTree returns the single branch from the root down to the category.
func (h *Handler) categoryTree(w http.ResponseWriter, r *http.Request) {
	categoryID, err := int64URLParam(r, "categoryID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	tree, err := h.services.CategoryService.AncestorTree(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tree, http.StatusOK)
}
