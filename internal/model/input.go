package model

// Create payloads. Required fields are plain values and are checked for
// emptiness; optional fields are pointers or documented as optional.

type CountryInput struct {
	Name string `json:"name"`
	Img  string `json:"img"` // optional
}

type CityInput struct {
	Name      string `json:"name"`
	Img       string `json:"img"` // optional
	Climate   string `json:"climate"`
	CountryID string `json:"country_id"`
}

type PoiInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Img         string   `json:"img"` // optional
	CityID      string   `json:"city_id"`
}

type PoiImageInput struct {
	URL   string `json:"url"`
	PoiID string `json:"poi_id"`
}

type TagInput struct {
	Name string `json:"name"`
}

type RegisterInput struct {
	Name      string  `json:"name"`
	UserName  string  `json:"user_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	BirthDate string  `json:"birth_date"`
	Location  *string `json:"location"`
}

// UserInput is the admin variant of RegisterInput that may set a role.
type UserInput struct {
	RegisterInput
	Role string `json:"role"`
}

type LoginInput struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type RelationInput struct {
	PoiID string `json:"poi_id"`
}

// Patches. A nil or empty field leaves the stored value untouched.

type CountryPatch struct {
	Name *string `json:"name"`
	Img  *string `json:"img"`
}

type CityPatch struct {
	Name      *string `json:"name"`
	Img       *string `json:"img"`
	Climate   *string `json:"climate"`
	CountryID *string `json:"country_id"`
}

type PoiPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Img         *string  `json:"img"`
	CityID      *string  `json:"city_id"`
}

type ProfilePatch struct {
	Name      *string `json:"name"`
	UserName  *string `json:"user_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	BirthDate *string `json:"birth_date"`
	Location  *string `json:"location"`
}
