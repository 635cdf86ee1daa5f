package catalogpager

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

// key returns a Key whose last byte is i, so key(1) < key(2) < ...
func key(i byte) Key {
	var k Key
	k[15] = i
	return k
}

// Placeholder and identifier quoting differ between dialects.
const (
	rePlaceholder = `(?:\$\d|\?)`
	reQuote       = "[`'\"]"
)

// Shared descriptors for the package tests.
var (
	subjectAreasDesc = EntityDescriptor{
		Name:     "subject_areas",
		Table:    "subject_areas",
		IDColumn: "id",
		Columns:  []string{"id", "name"},
		ParentScope: &ParentScope{
			JoinTable:       "books_subject_areas",
			JoinKeyToEntity: "subject_area_id",
			JoinKeyToParent: "book_id",
		},
	}
	copiesDesc = EntityDescriptor{
		Name:     "copies",
		Table:    "copies",
		IDColumn: "id",
		Columns:  []string{"id", "book_id", "barcode"},
		ParentScope: &ParentScope{
			JoinKeyToParent: "book_id",
		},
	}
	languagesDesc = EntityDescriptor{
		Name:     "languages",
		Table:    "languages",
		IDColumn: "id",
		Columns:  []string{"id", "iso_code", "name"},
	}
)
