package catalog

import "github.com/Alp4ka/catalogpager"

// Entity names registered in Schema.
const (
	EntityBooks        = "books"
	EntityAuthors      = "authors"
	EntityEditors      = "editors"
	EntityPublishers   = "publishers"
	EntitySeries       = "series"
	EntityTags         = "tags"
	EntitySubjectAreas = "subject_areas"
	EntityCopies       = "copies"
	EntityLanguages    = "languages"
	EntityCategories   = "categories"
)

var (
	bookColumns = []string{
		"id", "code_identifier", "isbn", "issn", "release_date", "subtitle", "title",
		"category_id", "language_id", "publisher_id",
	}
	personColumns = []string{"id", "first_name", "last_name", "isni", "orcid", "oclc"}
	namedColumns  = []string{"id", "name"}
)

func throughBooks(joinTable, entityKey string) *catalogpager.ParentScope {
	return &catalogpager.ParentScope{
		JoinTable:       joinTable,
		JoinKeyToEntity: entityKey,
		JoinKeyToParent: "book_id",
	}
}

var _schema = catalogpager.MustNewCatalog(
	catalogpager.EntityDescriptor{
		Name:        EntityBooks,
		Table:       "books",
		IDColumn:    "id",
		Columns:     bookColumns,
		ParentScope: &catalogpager.ParentScope{JoinKeyToParent: "publisher_id"},
	},
	catalogpager.EntityDescriptor{
		Name:        EntityAuthors,
		Table:       "persons",
		IDColumn:    "id",
		Columns:     personColumns,
		ParentScope: throughBooks("books_authors", "person_id"),
	},
	catalogpager.EntityDescriptor{
		Name:        EntityEditors,
		Table:       "persons",
		IDColumn:    "id",
		Columns:     personColumns,
		ParentScope: throughBooks("books_editors", "person_id"),
	},
	catalogpager.EntityDescriptor{
		Name:     EntityPublishers,
		Table:    "publishers",
		IDColumn: "id",
		Columns:  namedColumns,
	},
	catalogpager.EntityDescriptor{
		Name:        EntitySeries,
		Table:       "series",
		IDColumn:    "id",
		Columns:     []string{"id", "publisher_id", "name"},
		ParentScope: throughBooks("books_series", "series_id"),
	},
	catalogpager.EntityDescriptor{
		Name:        EntityTags,
		Table:       "tags",
		IDColumn:    "id",
		Columns:     namedColumns,
		ParentScope: throughBooks("books_tags", "tag_id"),
	},
	catalogpager.EntityDescriptor{
		Name:        EntitySubjectAreas,
		Table:       "subject_areas",
		IDColumn:    "id",
		Columns:     namedColumns,
		ParentScope: throughBooks("books_subject_areas", "subject_area_id"),
	},
	catalogpager.EntityDescriptor{
		Name:        EntityCopies,
		Table:       "copies",
		IDColumn:    "id",
		Columns:     []string{"id", "book_id", "barcode"},
		ParentScope: &catalogpager.ParentScope{JoinKeyToParent: "book_id"},
	},
	catalogpager.EntityDescriptor{
		Name:     EntityLanguages,
		Table:    "languages",
		IDColumn: "id",
		Columns:  []string{"id", "iso_code", "name"},
	},
	catalogpager.EntityDescriptor{
		Name:     EntityCategories,
		Table:    "categories",
		IDColumn: "id",
		Columns:  namedColumns,
	},
)

// Schema returns the catalog of every listable library entity. It is built
// once and shared.
func Schema() *catalogpager.Catalog {
	return _schema
}
