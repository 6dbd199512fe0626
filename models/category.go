package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DefaultCategoryID is the category given to auto-provisioned technician profiles.
const DefaultCategoryID = 1

// AllCategories is the filter sentinel meaning "no category filter".
const AllCategories = "Todas"
