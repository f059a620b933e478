package main

// Website is a bookmark entry joined with the name of its category.
// CategoryName is nil when the referenced category no longer exists.
type Website struct {
	ID           int     `db:"website_id" json:"id"`
	Name         string  `db:"name" json:"name"`
	URL          string  `db:"url" json:"url"`
	IconURL      string  `db:"icon_url" json:"icon_url"`
	Description  string  `db:"description" json:"description"`
	Order        int     `db:"sort_order" json:"order"`
	CategoryID   int     `db:"category_id" json:"category_id"`
	CategoryName *string `db:"category_name" json:"category_name"`
}

// WebsiteInput is the create payload. Icon and description are derived
// server-side from the URL.
type WebsiteInput struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Order      int    `json:"order"`
	CategoryID int    `json:"category_id"`
}

// WebsiteUpdate is a sparse update: nil fields are left untouched, which
// keeps "field omitted" distinct from "field cleared".
type WebsiteUpdate struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	IconURL     *string `json:"icon_url"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	CategoryID  *int    `json:"category_id"`
}

type PagedWebsites struct {
	Data  []Website `json:"data"`
	Total int       `json:"total"`
}

// Preview carries OpenGraph metadata for prefilling the create form.
type Preview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
