package catalog

import (
	"time"

	"github.com/Alp4ka/catalogpager"
)

// Book is a catalogued title. CategoryID, LanguageID and PublisherID are
// kept off the wire.
type Book struct {
	ID catalogpager.Key `gorm:"column:id" json:"id"`
	// CodeIdentifier is the shelf code, e.g. "SE20".
	CodeIdentifier string    `gorm:"column:code_identifier" json:"code_identifier"`
	ISBN           string    `gorm:"column:isbn" json:"isbn"`
	ISSN           *string   `gorm:"column:issn" json:"issn,omitempty"`
	ReleaseDate    time.Time `gorm:"column:release_date" json:"release_date"`
	Subtitle       *string   `gorm:"column:subtitle" json:"subtitle,omitempty"`
	Title          string    `gorm:"column:title" json:"title"`

	CategoryID  catalogpager.Key `gorm:"column:category_id" json:"-"`
	LanguageID  catalogpager.Key `gorm:"column:language_id" json:"-"`
	PublisherID catalogpager.Key `gorm:"column:publisher_id" json:"-"`
}

// Person is an author or an editor.
type Person struct {
	ID        catalogpager.Key `gorm:"column:id" json:"id"`
	FirstName string           `gorm:"column:first_name" json:"first_name"`
	LastName  string           `gorm:"column:last_name" json:"last_name"`
	ISNI      *string          `gorm:"column:isni" json:"isni,omitempty"`
	ORCID     *string          `gorm:"column:orcid" json:"orcid,omitempty"`
	OCLC      *int32           `gorm:"column:oclc" json:"oclc,omitempty"`
}

type Publisher struct {
	ID   catalogpager.Key `gorm:"column:id" json:"id"`
	Name string           `gorm:"column:name" json:"name"`
}

type Series struct {
	ID          catalogpager.Key `gorm:"column:id" json:"id"`
	PublisherID catalogpager.Key `gorm:"column:publisher_id" json:"publisher_id"`
	Name        string           `gorm:"column:name" json:"name"`
}

type Tag struct {
	ID   catalogpager.Key `gorm:"column:id" json:"id"`
	Name string           `gorm:"column:name" json:"name"`
}

type SubjectArea struct {
	ID   catalogpager.Key `gorm:"column:id" json:"id"`
	Name string           `gorm:"column:name" json:"name"`
}

// Copy is a physical, borrowable exemplar of a book.
type Copy struct {
	ID      catalogpager.Key `gorm:"column:id" json:"id"`
	BookID  catalogpager.Key `gorm:"column:book_id" json:"book_id"`
	Barcode string           `gorm:"column:barcode" json:"barcode"`
}

type Language struct {
	ID catalogpager.Key `gorm:"column:id" json:"id"`
	// ISOCode is the ISO 639-2/B code.
	ISOCode string `gorm:"column:iso_code" json:"iso_code"`
	Name    string `gorm:"column:name" json:"name"`
}

type Category struct {
	ID   catalogpager.Key `gorm:"column:id" json:"id"`
	Name string           `gorm:"column:name" json:"name"`
}
