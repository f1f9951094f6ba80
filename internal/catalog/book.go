package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// Internal document field names. The collection predates this service, so the
// stored vocabulary differs from the JSON one exposed over the API.
const (
	FieldName    = "BookName"
	FieldAuthor  = "BookAuthor"
	FieldEdition = "BookEdition"
	FieldPages   = "BookPages"
	FieldYear    = "BookYear"
)

// External JSON field names accepted by the API.
const (
	ExtID      = "id"
	ExtTitle   = "title"
	ExtAuthor  = "author"
	ExtEdition = "edition"
	ExtPages   = "pages"
	ExtYear    = "year"
)

// externalToInternal is the allow-list used to build write payloads. Only the
// keys enumerated here ever reach the datastore; everything else is ignored.
// The record identifier is deliberately absent: it is addressed via the URL
// path and never updated through a payload.
var externalToInternal = map[string]string{
	ExtTitle:   FieldName,
	ExtAuthor:  FieldAuthor,
	ExtEdition: FieldEdition,
	ExtPages:   FieldPages,
	ExtYear:    FieldYear,
}

// Book is a catalog entry in the external vocabulary. Pages and Year are kept
// as strings; numeric JSON input is canonicalized at the boundary.
type Book struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Edition string `json:"edition"`
	Pages   string `json:"pages"`
	Year    string `json:"year"`
}

// fields returns the book's content in the internal vocabulary, identifier
// excluded.
func (b Book) fields() map[string]string {
	return map[string]string{
		FieldName:    b.Title,
		FieldAuthor:  b.Author,
		FieldEdition: b.Edition,
		FieldPages:   b.Pages,
		FieldYear:    b.Year,
	}
}

// field returns the value of one internal field, or "" for an unknown name.
func (b Book) field(name string) string {
	switch name {
	case FieldName:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldEdition:
		return b.Edition
	case FieldPages:
		return b.Pages
	case FieldYear:
		return b.Year
	}
	return ""
}

// Payload is a decoded JSON request body. Values keep their wire form until
// mapped; numbers arrive as json.Number so canonicalization is lossless.
type Payload map[string]any

// DecodePayload reads a JSON object from r. A missing or malformed body is a
// validation error.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", ErrInvalid)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", ErrInvalid)
	}
	return p, nil
}

// Has reports whether the external key is present, regardless of its value.
// Required-field checks are presence checks only.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// MapFields applies the allow-list, translating present external keys to
// internal field names with canonicalized string values. Unknown keys are
// silently dropped.
func (p Payload) MapFields() map[string]string {
	out := make(map[string]string)
	for ext, internal := range externalToInternal {
		if v, ok := p[ext]; ok {
			out[internal] = canonicalScalar(v)
		}
	}
	return out
}

// book builds a Book from the payload's allow-listed fields. Absent fields
// default to "", matching how partial records are stored.
func (p Payload) book() Book {
	return Book{
		Title:   canonicalScalar(p[ExtTitle]),
		Author:  canonicalScalar(p[ExtAuthor]),
		Edition: canonicalScalar(p[ExtEdition]),
		Pages:   canonicalScalar(p[ExtPages]),
		Year:    canonicalScalar(p[ExtYear]),
	}
}

// canonicalScalar converts a decoded JSON value to its canonical string form.
// Pages and year appear as both strings and numbers in the wild; both collapse
// to the decimal string here.
func canonicalScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
