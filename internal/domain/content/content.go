package content

import (
	"encoding/json"
	"fmt"
	"time"

	"trustcms/internal/form"
)

// Kind identifies a content entity.
type Kind string

const (
	KindPatron  Kind = "patron"
	KindTeam    Kind = "team"
	KindTrustee Kind = "trustee"
	KindGallery Kind = "gallery"
	KindPaper   Kind = "paper"
	KindMedia   Kind = "media"
)

// Item is a stored content record. Data holds the entity payload as JSON.
type Item struct {
	ID        int64           `json:"id"`
	Kind      Kind            `json:"kind"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Member is the payload shared by patrons, team members and trustees.
type Member struct {
	Image       *string  `json:"image,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Desig       *string  `json:"desig,omitempty"`
	PopupImg    *string  `json:"popupImg,omitempty"`
	PopupDesc   *string  `json:"popupdesc,omitempty"`
	Link        *string  `json:"link,omitempty"`
	SocialMedia *string  `json:"socialMedia,omitempty"`
	Order       *float64 `json:"order,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// GalleryItem is one gallery entry.
type GalleryItem struct {
	Image     *string  `json:"image,omitempty"`
	Title     *string  `json:"title,omitempty"`
	PopupImg  *string  `json:"popupImg,omitempty"`
	PopupDesc *string  `json:"popupdesc,omitempty"`
	Year      *int     `json:"year,omitempty"`
	Order     *float64 `json:"order,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

// Paper is a research paper listing.
type Paper struct {
	Image           *string  `json:"image,omitempty"`
	Title           *string  `json:"title,omitempty"`
	Authors         *string  `json:"authors,omitempty"`
	Link            *string  `json:"link,omitempty"`
	PublicationYear *int     `json:"publicationYear,omitempty"`
	Order           *float64 `json:"order,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// MediaItem is a media coverage listing.
type MediaItem struct {
	Image           *string  `json:"image,omitempty"`
	Title           *string  `json:"title,omitempty"`
	Publisher       *string  `json:"publisher,omitempty"`
	Link            *string  `json:"link,omitempty"`
	PublicationYear *int     `json:"publicationYear,omitempty"`
	Order           *float64 `json:"order,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// Definition binds an entity kind to its URL collection, its contract and
// its payload type.
type Definition struct {
	Kind       Kind
	Collection string
	Contract   form.Contract
	newPayload func() any
}

// Payload decodes accepted values into a fresh typed payload and encodes it
// as JSON for storage. Only fields present in values appear in the output.
func (d Definition) Payload(values form.Values) (json.RawMessage, error) {
	p := d.newPayload()
	if err := form.Decode(values, p); err != nil {
		return nil, fmt.Errorf("%s payload: %w", d.Kind, err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", d.Kind, err)
	}
	return b, nil
}

// Definitions returns every entity in routing order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds the definition for kind.
func Lookup(kind Kind) (Definition, bool) {
	for _, d := range definitions {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}
