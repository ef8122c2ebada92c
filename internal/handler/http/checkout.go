package http

import (
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

const msgOrderPlaced = "order placed, a confirmation was sent by e-mail"

// confirmAddressesResponse names the address the order will ship to.
type confirmAddressesResponse struct {
	ShippingAddressID int64 `json:"shipping_address_id"`
}

func (h *Handler) mainAddress(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	address, err := h.services.AddressService.MainAddress(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, address, http.StatusOK)
}

func (h *Handler) confirmAddresses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	var form models.AddressForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, r, err)
		return
	}

	shippingID, err := h.services.AddressService.ConfirmAddresses(ctx, sess, userID, form)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, confirmAddressesResponse{ShippingAddressID: shippingID}, http.StatusOK)
}

// checkout turns the cart into an order and mails the confirmation.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthManager.CurrentUser(ctx, sess)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orderID, err := h.services.CheckoutService.Checkout(ctx, sess, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("order_id", orderID).Int64("user_id", user.UserID).Msg("order placed")
	utils.WriteJSON(w, models.CheckoutResponse{OrderID: orderID, Message: msgOrderPlaced}, http.StatusCreated)
}
