package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/model"
)

// Column widths of the PostgreSQL schema, in characters.
const (
	maxName        = 120
	maxTagName     = 60
	maxUserName    = 30
	maxImg         = 240
	maxDescription = 500
	maxURL         = 500

	// bcrypt input limit, in bytes.
	maxPasswordBytes = 72
)

type field struct {
	name  string
	value string
}

// required fails with BadRequest listing every empty field.
func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperr.BadRequestf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

type bounded struct {
	name  string
	value string
	max   int
}

// withinLimits fails with BadRequest on the first value wider than its column.
func withinLimits(values ...bounded) error {
	for _, v := range values {
		if utf8.RuneCountInString(v.value) > v.max {
			return apperr.BadRequestf("%s must be at most %d characters", v.name, v.max)
		}
	}
	return nil
}

func countryLimits(c model.Country) error {
	return withinLimits(bounded{"name", c.Name, maxName}, bounded{"img", c.Img, maxImg})
}

func cityLimits(c model.City) error {
	return withinLimits(
		bounded{"name", c.Name, maxName},
		bounded{"img", c.Img, maxImg},
		bounded{"climate", c.Climate, maxName},
	)
}

func poiLimits(p model.Poi) error {
	return withinLimits(
		bounded{"name", p.Name, maxName},
		bounded{"description", p.Description, maxDescription},
		bounded{"img", p.Img, maxImg},
	)
}

func userLimits(u model.User) error {
	location := ""
	if u.Location != nil {
		location = *u.Location
	}
	return withinLimits(
		bounded{"name", u.Name, maxName},
		bounded{"user_name", u.UserName, maxUserName},
		bounded{"email", u.Email, maxName},
		bounded{"location", location, maxName},
	)
}

func checkPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return apperr.BadRequestf("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// itemErr prefixes batch failures with the offending position. Single-item
// requests keep the original message.
func itemErr(batch bool, i int, err error) error {
	if !batch {
		return err
	}
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		return err
	}
	return &apperr.Error{Kind: kind, Message: fmt.Sprintf("item %d: %s", i, apperr.MessageOf(err)), Err: err}
}

// patchString overwrites dst only when src is present and non-empty.
func patchString(dst *string, src *string) bool {
	if src == nil {
		return false
	}
	v := strings.TrimSpace(*src)
	if v == "" || v == *dst {
		return false
	}
	*dst = v
	return true
}

func checkCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperr.BadRequestf("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return apperr.BadRequestf("longitude must be between -180 and 180")
	}
	return nil
}

// pairKey identifies a name within a parent scope.
func pairKey(name, parent string) string {
	return name + "\x00" + parent
}
