package model

import (
	"github.com/mirri-tools/strainsync/internal/errors"
)

// Location is a geographic origin record.
type Location struct {
	CountryCode           string // ISO 3166-1 alpha-3, a historic code, or "INW"
	State                 string
	Province              string
	Municipality          string
	Island                string
	Site                  string
	Other                 string
	Latitude              *float64
	Longitude             *float64
	Altitude              *float64
	CoordUncertainty      *float64
	CoordSpatialReference string
	GeorefMethod          string
}

// SetCountry validates code against the current and historic ISO 3166-1
// alpha-3 tables plus the literal "INW" (international waters).
func (l *Location) SetCountry(code string) error {
	if !ValidCountryCode(code) {
		return errors.Newf("country %q: not a known ISO 3166-1 alpha-3 code", code).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	l.CountryCode = code
	return nil
}

// CountryName returns the English short name for the stored country code.
func (l *Location) CountryName() string {
	return CountryName(l.CountryCode)
}

// SetCoordinates stores latitude and longitude after range checks.
func (l *Location) SetCoordinates(lat, long float64) error {
	if lat < -90 || lat > 90 {
		return errors.Newf("latitude %v out of range [-90, 90]", lat).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	if long < -180 || long > 180 {
		return errors.Newf("longitude %v out of range [-180, 180]", long).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	l.Latitude = &lat
	l.Longitude = &long
	return nil
}

// IsZero reports whether the location carries no data.
func (l *Location) IsZero() bool {
	return l.CountryCode == "" && l.State == "" && l.Province == "" &&
		l.Municipality == "" && l.Island == "" && l.Site == "" && l.Other == "" &&
		l.Latitude == nil && l.Longitude == nil && l.Altitude == nil &&
		l.CoordUncertainty == nil && l.CoordSpatialReference == "" && l.GeorefMethod == ""
}
