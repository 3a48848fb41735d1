package model

// Country is the root of the geographic hierarchy
type Country struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Img  string `json:"img,omitempty" db:"img"`
}

// City belongs to exactly one country; its name is unique within that country
type City struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Img       string `json:"img,omitempty" db:"img"`
	Climate   string `json:"climate" db:"climate"`
	CountryID string `json:"country_id" db:"country_id"`
}

// Poi is a point of interest; its name is unique within its city
type Poi struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`
	Img         string  `json:"img,omitempty" db:"img"`
	CityID      string  `json:"city_id" db:"city_id"`
}

// PoiImage is an additional picture owned by a poi
type PoiImage struct {
	ID    string `json:"id" db:"id"`
	URL   string `json:"url" db:"url"`
	PoiID string `json:"poi_id" db:"poi_id"`
}

// Tag is a free label attached to pois through PoiTag rows
type Tag struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PoiTag links a poi and a tag
type PoiTag struct {
	PoiID string `json:"poi_id" db:"poi_id"`
	TagID string `json:"tag_id" db:"tag_id"`
}

// CountryFilter narrows country listings
type CountryFilter struct {
	Name string
}

// CityFilter narrows city listings
type CityFilter struct {
	Name      string
	CountryID string
}

// PoiFilter narrows poi listings
type PoiFilter struct {
	Name      string
	CityID    string
	CountryID string
	TagID     string
}

// TagFilter narrows tag listings
type TagFilter struct {
	Name string
}
