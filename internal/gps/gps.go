// Package gps converts between exiftool's sexagesimal coordinates and
// signed decimal degrees.
package gps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/tags"
)

type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func (a Axis) String() string {
	if a == Longitude {
		return "longitude"
	}
	return "latitude"
}

// negativeRef is the hemisphere that flips the sign on the axis.
func (a Axis) negativeRef() (letter, word string) {
	if a == Longitude {
		return "W", "West"
	}
	return "S", "South"
}

func (a Axis) positiveRef() string {
	if a == Longitude {
		return "East"
	}
	return "North"
}

// Coordinate is a position in signed decimal degrees. Negative latitude is
// south, negative longitude is west.
type Coordinate struct {
	Lat float64
	Lng float64
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return appErrors.New(appErrors.InvalidValue, "gps", "latitude %v out of range [-90, 90]", c.Lat)
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return appErrors.New(appErrors.InvalidValue, "gps", "longitude %v out of range [-180, 180]", c.Lng)
	}
	return nil
}

// ToDecimalDegrees parses a value such as `40 deg 26' 46.00" N` or
// `40 26' 46" N`. A bare number returns ok=false: callers drop the value
// instead of guessing its precision.
func ToDecimalDegrees(raw string, axis Axis) (float64, bool, error) {
	fields := strings.Fields(raw)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "deg" {
			continue
		}
		parts = append(parts, f)
	}

	if len(parts) == 0 {
		return 0, false, appErrors.New(appErrors.InvalidValue, "gps", "empty %s value", axis)
	}
	if len(parts) == 1 {
		if _, err := strconv.ParseFloat(parts[0], 64); err == nil {
			return 0, false, nil
		}
	}
	if len(parts) != 4 {
		return 0, false, appErrors.New(appErrors.InvalidValue, "gps", "malformed %s %q", axis, raw)
	}

	deg, err := parseComponent(parts[0], "")
	if err != nil {
		return 0, false, invalid(axis, raw, err)
	}
	mins, err := parseComponent(parts[1], "'")
	if err != nil {
		return 0, false, invalid(axis, raw, err)
	}
	secs, err := parseComponent(parts[2], `"`)
	if err != nil {
		return 0, false, invalid(axis, raw, err)
	}

	value := deg + mins/60 + secs/3600
	letter, word := axis.negativeRef()
	ref := parts[3]
	if strings.EqualFold(ref, letter) || strings.EqualFold(ref, word) {
		value = -value
	}
	return value, true, nil
}

func parseComponent(token, suffix string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(token, suffix), 64)
}

func invalid(axis Axis, raw string, err error) error {
	return appErrors.Wrap(appErrors.InvalidValue, "gps", "", fmt.Errorf("malformed %s %q: %w", axis, raw, err))
}

// Sexagesimal splits a signed decimal into degrees, minutes, seconds and a
// hemisphere letter. Zero is north/east.
func Sexagesimal(decimal float64, axis Axis) (deg, mins int, secs float64, ref string) {
	ref = axis.positiveRef()[:1]
	if decimal < 0 {
		letter, _ := axis.negativeRef()
		ref = letter
		decimal = -decimal
	}
	deg = int(decimal)
	rem := (decimal - float64(deg)) * 60
	mins = int(rem)
	secs = (rem - float64(mins)) * 60
	return deg, mins, secs, ref
}

// Format renders a decimal in exiftool's print style, e.g. `40 deg 26' 46.00" N`.
func Format(decimal float64, axis Axis) string {
	deg, mins, secs, ref := Sexagesimal(decimal, axis)
	return fmt.Sprintf(`%d deg %d' %.2f" %s`, deg, mins, secs, ref)
}

// ToSexagesimalTags builds the four GPS tags exiftool needs to set a position.
func ToSexagesimalTags(c Coordinate) tags.Values {
	return tags.Values{
		tags.GPSLatitude:     FormatDecimal(c.Lat),
		tags.GPSLatitudeRef:  hemisphere(c.Lat, Latitude),
		tags.GPSLongitude:    FormatDecimal(c.Lng),
		tags.GPSLongitudeRef: hemisphere(c.Lng, Longitude),
	}
}

func hemisphere(v float64, axis Axis) string {
	if v < 0 {
		_, word := axis.negativeRef()
		return word
	}
	return axis.positiveRef()
}

// FormatDecimal uses the shortest representation that parses back to v.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FromTags returns a coordinate only when both decimal entries are present.
func FromTags(v tags.Values) (Coordinate, bool, error) {
	latRaw, okLat := v.Get(tags.GPSLatitude)
	lngRaw, okLng := v.Get(tags.GPSLongitude)
	if !okLat || !okLng {
		return Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return Coordinate{}, false, appErrors.Wrap(appErrors.InvalidValue, "gps", "", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return Coordinate{}, false, appErrors.Wrap(appErrors.InvalidValue, "gps", "", err)
	}
	return Coordinate{Lat: lat, Lng: lng}, true, nil
}
