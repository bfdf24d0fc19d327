package fuzzysearch

import "strconv"

// Record is an entry that can be searched.
// Field returns the value of a named searchable field and false when the record
// has no such field. Missing fields are scored as empty strings.
type Record interface {
	// Key returns the stable identity of the record.
	Key() string

	// Field returns the raw value of the named field.
	Field(name string) (string, bool)
}

// MapRecord is a Record backed by a plain field map.
type MapRecord struct {
	ID     string            `json:"id" yaml:"id"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Key returns the record ID.
func (r MapRecord) Key() string {
	return r.ID
}

// Field returns the named field value.
func (r MapRecord) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Club is a sports club shown on the map. It exposes "name" and "description"
// as searchable fields.
type Club struct {
	Slug        int        `json:"slug" yaml:"slug"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	GeoLocation [2]float64 `json:"geoLocation" yaml:"geo_location"`
}

// Field names exposed by Club.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// Key returns the club slug.
func (c Club) Key() string {
	return strconv.Itoa(c.Slug)
}

// Field returns the club name or description.
func (c Club) Field(name string) (string, bool) {
	switch name {
	case FieldName:
		return c.Name, true
	case FieldDescription:
		return c.Description, c.Description != ""
	default:
		return "", false
	}
}

// Clubs converts a club slice to records, preserving order.
func Clubs(clubs []Club) []Record {
	records := make([]Record, len(clubs))
	for i := range clubs {
		records[i] = clubs[i]
	}
	return records
}

// fieldValue reads a field from a possibly nil record.
func fieldValue(r Record, name string) string {
	if r == nil {
		return ""
	}
	v, ok := r.Field(name)
	if !ok {
		return ""
	}
	return v
}
