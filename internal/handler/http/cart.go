package http

import (
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeCart(w, r, sess, http.StatusOK)
}

// addToCart sets the quantity of a product. A missing quantity means one
// item; the cart clamps the value to its limits.
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.services.CartService.AddProduct(ctx, sess, userID, req.ProductID, quantity); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeCart(w, r, sess, http.StatusOK)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	productID, err := int64URLParam(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CartService.RemoveProduct(r.Context(), sess, productID); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeCart(w, r, sess, http.StatusOK)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, sess *models.BrowserSession, status int) {
	view, err := h.services.CartService.View(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, status)
}
