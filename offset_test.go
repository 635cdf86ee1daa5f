package catalogpager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tBook struct {
	ID    Key    `gorm:"column:id"`
	Title string `gorm:"column:title"`
}

func Test_NewOffsetPager_validate(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		wantErr bool
	}{
		{"first page", 1, 10, false},
		{"later page", 7, 3, false},
		{"page zero", 0, 10, true},
		{"negative page", -1, 10, true},
		{"per_page zero", 1, 0, true},
		{"negative per_page", 1, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOffsetPager(tt.page, tt.perPage)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPageParameters))
				assert.True(t, IsBadRequest(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_RawOffsetPager_Decode(t *testing.T) {
	p, err := RawOffsetPager{}.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, DefaultPerPage, p.GetPerPage())
	assert.Equal(t, 0, p.Offset())

	p, err = RawOffsetPager{Page: lo.ToPtr(3), PerPage: lo.ToPtr(500)}.Decode(50)
	require.NoError(t, err)
	assert.Equal(t, 50, p.GetPerPage())
	assert.Equal(t, 100, p.Offset())

	_, err = RawOffsetPager{Page: lo.ToPtr(0)}.Decode(50)
	assert.True(t, errors.Is(err, ErrInvalidPageParameters))

	_, err = RawOffsetPager{PerPage: lo.ToPtr(0)}.Decode(50)
	assert.True(t, errors.Is(err, ErrInvalidPageParameters))
}

func Test_TotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int64
	}{
		{25, 10, 3},
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{30, 10, 3},
		{7, 1, 7},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.perPage), func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.perPage))
		})
	}
}

func Test_FindPage(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		perPage        int
		expectedQuery  string
		rows           func() *sqlmock.Rows
		expectCount    bool
		countRows      func() *sqlmock.Rows
		wantRows       int
		wantTotal      int64
		wantTotalPages int64
	}{
		{
			name:    "first page",
			page:    1,
			perPage: 10,
			expectedQuery: "^SELECT \\*, COUNT\\(\\*\\) OVER \\(\\) AS total_count FROM \\(SELECT books\\.id, books\\.title FROM " +
				reQuote + "books" + reQuote + "\\) AS t LIMIT 10$",
			rows: func() *sqlmock.Rows {
				r := sqlmock.NewRows([]string{"id", "title", "total_count"})
				for i := byte(1); i <= 10; i++ {
					r.AddRow(key(i).String(), "title", 25)
				}
				return r
			},
			wantRows:       10,
			wantTotal:      25,
			wantTotalPages: 3,
		},
		{
			name:    "last partial page",
			page:    3,
			perPage: 10,
			expectedQuery: "^SELECT \\*, COUNT\\(\\*\\) OVER \\(\\) AS total_count FROM \\(SELECT books\\.id, books\\.title FROM " +
				reQuote + "books" + reQuote + "\\) AS t LIMIT 10 OFFSET 20$",
			rows: func() *sqlmock.Rows {
				r := sqlmock.NewRows([]string{"id", "title", "total_count"})
				for i := byte(21); i <= 25; i++ {
					r.AddRow(key(i).String(), "title", 25)
				}
				return r
			},
			wantRows:       5,
			wantTotal:      25,
			wantTotalPages: 3,
		},
		{
			name:    "nothing matches",
			page:    1,
			perPage: 10,
			expectedQuery: "^SELECT \\*, COUNT\\(\\*\\) OVER \\(\\) AS total_count FROM \\(SELECT books\\.id, books\\.title FROM " +
				reQuote + "books" + reQuote + "\\) AS t LIMIT 10$",
			rows:           func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id", "title", "total_count"}) },
			wantRows:       0,
			wantTotal:      0,
			wantTotalPages: 0,
		},
		{
			name:    "page past the end recounts",
			page:    9,
			perPage: 10,
			expectedQuery: "^SELECT \\*, COUNT\\(\\*\\) OVER \\(\\) AS total_count FROM \\(SELECT books\\.id, books\\.title FROM " +
				reQuote + "books" + reQuote + "\\) AS t LIMIT 10 OFFSET 80$",
			rows:           func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id", "title", "total_count"}) },
			expectCount:    true,
			countRows:      func() *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(25) },
			wantRows:       0,
			wantTotal:      25,
			wantTotalPages: 3,
		},
	}

	for _, sqlMockFn := range sqlMockFnList {
		for _, tt := range tests {
			dialect, db, dbMock, err := sqlMockFn()
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				require.NoError(t, err)

				dbMock.ExpectQuery(tt.expectedQuery).WillReturnRows(tt.rows())
				if tt.expectCount {
					dbMock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM \\(SELECT books\\.id, books\\.title FROM " +
						reQuote + "books" + reQuote + "\\) AS t$").
						WillReturnRows(tt.countRows())
				}

				pager, err := NewOffsetPager(tt.page, tt.perPage)
				require.NoError(t, err)

				page, err := FindPage[tBook](context.Background(), db.Table("books").Select("books.id, books.title"), pager)
				require.NoError(t, err)

				assert.Len(t, page.Rows, tt.wantRows)
				assert.LessOrEqual(t, len(page.Rows), tt.perPage)
				assert.Equal(t, tt.wantTotal, page.Total)
				assert.Equal(t, tt.wantTotalPages, page.TotalPages)
				assert.Equal(t, tt.page, page.Page)
				assert.NoError(t, dbMock.ExpectationsWereMet())
			})
		}
	}
}

func Test_OffsetPager_WithOrder(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	dbMock.ExpectQuery("^SELECT \\*, COUNT\\(\\*\\) OVER \\(\\) AS total_count FROM \\(SELECT books\\.id, books\\.title FROM " +
		reQuote + "books" + reQuote + " WHERE books\\.title = " + rePlaceholder + "\\) AS t ORDER BY id ASC LIMIT 2 OFFSET 2$").
		WithArgs("Dune").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "total_count"}).AddRow(key(3).String(), "Dune", 4))

	pager, err := NewOffsetPager(2, 2)
	require.NoError(t, err)
	pager = pager.WithOrder(OrderBy{Column: "id", Direction: DirectionASC})

	base := db.Table("books").Select("books.id, books.title").Where("books.title = ?", "Dune")
	page, err := FindPage[tBook](context.Background(), base, pager)
	require.NoError(t, err)

	require.Len(t, page.Rows, 1)
	assert.Equal(t, key(3), page.Rows[0].ID)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_FindPage_StorageError(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	dbMock.ExpectQuery("^SELECT \\*, COUNT").WillReturnError(errors.New("boom"))

	pager, err := NewOffsetPager(1, 10)
	require.NoError(t, err)

	_, err = FindPage[tBook](context.Background(), db.Table("books").Select("books.id, books.title"), pager)
	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
}
