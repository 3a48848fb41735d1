package model

// Catalog is the nested document accepted by the seeder.
type Catalog struct {
	Tags      []string         `json:"tags"`
	Countries []CatalogCountry `json:"countries"`
}

type CatalogCountry struct {
	Name   string        `json:"name"`
	Img    string        `json:"img"`
	Cities []CatalogCity `json:"cities"`
}

type CatalogCity struct {
	Name    string       `json:"name"`
	Img     string       `json:"img"`
	Climate string       `json:"climate"`
	Pois    []CatalogPoi `json:"pois"`
}

type CatalogPoi struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Img         string   `json:"img"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

// ImportSummary counts the rows written by one import.
type ImportSummary struct {
	Countries int `json:"countries"`
	Cities    int `json:"cities"`
	Pois      int `json:"pois"`
	Images    int `json:"images"`
	Tags      int `json:"tags"`
	Links     int `json:"links"`
}
