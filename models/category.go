package models

// ProductCategory is a node of the category forest as stored in the database.
// ParentID 0 marks a root category.
type ProductCategory struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id"`
	Name     string `json:"name"`
}

// IsRoot reports whether the category sits at the top level of the forest.
func (c ProductCategory) IsRoot() bool {
	return c.ParentID == 0
}

// CategoryNode is a category with its children attached, as rendered in the
// storefront menu.
type CategoryNode struct {
	ID       int64           `json:"id"`
	ParentID int64           `json:"parent_id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children"`
}
