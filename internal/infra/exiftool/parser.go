package exiftool

import (
	"bufio"
	"io"
	"strings"

	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/gps"
	"exifmgr/internal/tags"
)

const maxLineBytes = 1024 * 1024

// Parse reads `-s` output (`FieldName: value` per line) into normalized
// values. Latitude and longitude become signed decimal strings; a bare
// numeric coordinate is dropped. Nothing is returned on error.
func Parse(r io.Reader) (tags.Values, error) {
	values := tags.Values{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, value, found := strings.Cut(line, ":")
		if !found {
			return nil, appErrors.New(appErrors.UnrecognizedTag, "parse", "malformed output line %q", line)
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)

		tag, ok := tags.Lookup(label)
		if !ok {
			return nil, appErrors.New(appErrors.UnrecognizedTag, "parse", "unknown tag %q in exiftool output", label)
		}

		switch tag.Kind() {
		case tags.KindLatitude, tags.KindLongitude:
			axis := gps.Latitude
			if tag.Kind() == tags.KindLongitude {
				axis = gps.Longitude
			}
			decimal, ok, err := gps.ToDecimalDegrees(value, axis)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			values[tag] = gps.FormatDecimal(decimal)
		case tags.KindVerbatim:
			values[tag] = value
		default:
			return nil, appErrors.New(appErrors.UnmanagedTag, "parse", "tag %s is not managed", tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "parse", "", err)
	}
	return values, nil
}
