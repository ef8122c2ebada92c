package models

// Product is a catalog item.
//
// CategoryIDs, FeatureIDs and Features are populated only when a single
// product is loaded; listings leave them empty.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImagePath   string  `json:"image_path"`
	Price       float64 `json:"price"`

	CategoryIDs []int64          `json:"category_ids,omitempty"`
	FeatureIDs  []int64          `json:"feature_ids,omitempty"`
	Features    []ProductFeature `json:"features,omitempty"`

	// ImageURL is the presentation path of the resized image.
	ImageURL string `json:"image_url,omitempty"`
}

// ProductDetail is a product as shown on its own page, together with its
// state in the visitor's cart.
type ProductDetail struct {
	Product

	InCart       bool `json:"in_cart"`
	CartQuantity int  `json:"cart_quantity"`

	// MaxQuantity is the largest quantity one cart line accepts. Zero means
	// no limit.
	MaxQuantity int `json:"max_quantity"`
}

// ProductFeature is a named product characteristic.
type ProductFeature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	// Search matches a substring of the product name or description.
	Search string `json:"expr1,omitempty"`

	// CategoryID restricts the listing to the category and all of its
	// descendants. Zero disables the filter.
	CategoryID int64 `json:"category_id,omitempty"`
}

// IsEmpty reports whether no filter is active.
func (f ProductFilter) IsEmpty() bool {
	return f.Search == "" && f.CategoryID == 0
}

// ProductQuery is the store-level form of a listing request, after category
// expansion and pagination have been resolved.
type ProductQuery struct {
	OrderBy     string
	Search      string
	CategoryIDs []int64
	Limit       uint64
	Offset      uint64
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Items     []Product `json:"items"`
	Page      int       `json:"page"`
	PageSize  int       `json:"page_size"`
	PageCount int       `json:"page_count"`
	Total     int       `json:"total"`

	// RowNumber is the zero-based position of the first item in the
	// filtered result set.
	RowNumber int `json:"row_number"`
}
