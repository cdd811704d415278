// Package tags is the closed catalog of metadata fields understood by exiftool.
package tags

import (
	"sort"

	appErrors "exifmgr/internal/errors"
)

type Tag int

const (
	MIMEType Tag = iota
	GPSLatitude
	GPSLatitudeRef
	GPSLongitude
	GPSLongitudeRef
	FileModifyDate
	DateTimeOriginal
	ModifyDate
	CreateDate

	tagCount
)

// Kind selects how a value read back from exiftool is normalized.
type Kind int

const (
	KindVerbatim Kind = iota
	KindLatitude
	KindLongitude
	// KindWriteOnly tags may be written but have no read handling.
	KindWriteOnly
)

type definition struct {
	field string
	kind  Kind
}

var catalog = [tagCount]definition{
	MIMEType:         {field: "MIMEType", kind: KindVerbatim},
	GPSLatitude:      {field: "GPSLatitude", kind: KindLatitude},
	GPSLatitudeRef:   {field: "GPSLatitudeRef", kind: KindWriteOnly},
	GPSLongitude:     {field: "GPSLongitude", kind: KindLongitude},
	GPSLongitudeRef:  {field: "GPSLongitudeRef", kind: KindWriteOnly},
	FileModifyDate:   {field: "FileModifyDate", kind: KindVerbatim},
	DateTimeOriginal: {field: "DateTimeOriginal", kind: KindVerbatim},
	ModifyDate:       {field: "ModifyDate", kind: KindVerbatim},
	CreateDate:       {field: "CreateDate", kind: KindVerbatim},
}

var byField = func() map[string]Tag {
	m := make(map[string]Tag, tagCount)
	for i, def := range catalog {
		m[def.field] = Tag(i)
	}
	return m
}()

// FieldName returns the exiftool field name of t.
func (t Tag) FieldName() string {
	if !t.Valid() {
		return ""
	}
	return catalog[t].field
}

func (t Tag) Kind() Kind {
	if !t.Valid() {
		return KindWriteOnly
	}
	return catalog[t].kind
}

func (t Tag) Valid() bool {
	return t >= 0 && t < tagCount
}

// Readable reports whether values of t can be parsed from read output.
func (t Tag) Readable() bool {
	return t.Valid() && t.Kind() != KindWriteOnly
}

func (t Tag) String() string {
	if !t.Valid() {
		return "Tag(invalid)"
	}
	return catalog[t].field
}

// Lookup resolves an exiftool field name. Matching is exact.
func Lookup(field string) (Tag, bool) {
	t, ok := byField[field]
	return t, ok
}

// Parse is Lookup with an error for unknown names.
func Parse(field string) (Tag, error) {
	t, ok := Lookup(field)
	if !ok {
		return 0, appErrors.New(appErrors.UnrecognizedTag, "lookup", "unknown tag %q", field)
	}
	return t, nil
}

// All returns the catalog in declaration order.
func All() []Tag {
	out := make([]Tag, 0, tagCount)
	for i := Tag(0); i < tagCount; i++ {
		out = append(out, i)
	}
	return out
}

// Values maps tags to their string values; a missing key means the value is absent.
type Values map[Tag]string

// Tags returns the keys of v in catalog order.
func (v Values) Tags() []Tag {
	out := make([]Tag, 0, len(v))
	for t := range v {
		out = append(out, t)
	}
	Sort(out)
	return out
}

// Get returns the value for t and whether it is present.
func (v Values) Get(t Tag) (string, bool) {
	val, ok := v[t]
	return val, ok
}

// Sort orders tags by catalog position.
func Sort(list []Tag) {
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
}

// Unique returns list without duplicates, in catalog order.
func Unique(list []Tag) []Tag {
	seen := make(map[Tag]bool, len(list))
	out := make([]Tag, 0, len(list))
	for _, t := range list {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	Sort(out)
	return out
}
