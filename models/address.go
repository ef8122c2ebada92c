package models

// UserAddress is a postal address of a user. Exactly one address per user is
// flagged Main; the address service keeps that invariant.
type UserAddress struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Main         bool   `json:"main"`
	Street       string `json:"street" validate:"required,max=150"`
	Number       int    `json:"number" validate:"required,gt=0"`
	Complement   string `json:"complement" validate:"max=10"`
	Neighborhood string `json:"neighborhood" validate:"required,max=100"`
	City         string `json:"city" validate:"required,max=150"`
	State        string `json:"state" validate:"required,uf"`
	Cep          string `json:"cep" validate:"required,cep"`
}

// AddressFields is the editable part of an address as submitted by a form.
type AddressFields struct {
	Street       string `json:"street"`
	Number       int    `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Cep          string `json:"cep"`
}

// Apply copies the form fields into a.
func (f AddressFields) Apply(a *UserAddress) {
	a.Street = f.Street
	a.Number = f.Number
	a.Complement = f.Complement
	a.Neighborhood = f.Neighborhood
	a.City = f.City
	a.State = f.State
	a.Cep = f.Cep
}

// AddressForm is the checkout address confirmation payload.
// When SameAddress is set, Shipping is ignored and the order ships to the
// personal (main) address.
type AddressForm struct {
	Personal    AddressFields `json:"personal"`
	Shipping    AddressFields `json:"shipping"`
	SameAddress bool          `json:"same_address"`
}
