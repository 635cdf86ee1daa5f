package catalogpager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// TotalCountColumn is the column carrying the windowed count of matching
// rows in a wrapped offset query.
const TotalCountColumn = "total_count"

// OffsetPager wraps an already filtered query with page/per_page semantics
// and an embedded total count. Prefer keyset pagination for general listing:
// the windowed count scans the whole filtered set on every call.
type OffsetPager struct {
	page    int
	perPage int
	order   *OrderBy
}

// NewOffsetPager returns a pager for the 1-based page. It fails with
// ErrInvalidPageParameters if page < 1 or perPage < 1.
func NewOffsetPager(page, perPage int) (*OffsetPager, error) {
	p := &OffsetPager{page: page, perPage: perPage}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// RawOffsetPager is the boundary form of an offset page request. Absent
// fields default to page 1 and DefaultPerPage.
type RawOffsetPager struct {
	Page    *int `json:"page,omitempty"`
	PerPage *int `json:"per_page,omitempty"`
}

// Decode validates the request. PerPage is capped at maxPerPage when
// maxPerPage > 0.
func (r RawOffsetPager) Decode(maxPerPage int) (*OffsetPager, error) {
	page := lo.FromPtrOr(r.Page, 1)
	perPage := lo.FromPtrOr(r.PerPage, DefaultPerPage)
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return NewOffsetPager(page, perPage)
}

// WithOrder orders the wrapped rows. The column must be visible in the
// projection of the base query.
func (p *OffsetPager) WithOrder(orderBy OrderBy) *OffsetPager {
	if p == nil {
		p = &OffsetPager{page: 1, perPage: DefaultPerPage}
	}

	p.order = &orderBy

	return p
}

func (p *OffsetPager) GetPage() int {
	if p == nil {
		return 0
	}

	return p.page
}

func (p *OffsetPager) GetPerPage() int {
	if p == nil {
		return 0
	}

	return p.perPage
}

// Offset returns (page-1) * per_page.
func (p *OffsetPager) Offset() int {
	if p == nil || p.page < 1 {
		return 0
	}

	return (p.page - 1) * p.perPage
}

func (p *OffsetPager) validate() error {
	if p == nil {
		return fmt.Errorf("%w: offset pager is nil", ErrInvalidPageParameters)
	}
	if p.page < 1 {
		return fmt.Errorf("%w: page %d is less than 1", ErrInvalidPageParameters, p.page)
	}
	if p.perPage < 1 {
		return fmt.Errorf("%w: per_page %d is less than 1", ErrInvalidPageParameters, p.perPage)
	}
	if p.order != nil {
		if err := p.order.validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPageParameters, err)
		}
	}

	return nil
}

// Wrap returns
//
//	SELECT *, COUNT(*) OVER () AS total_count FROM (<base>) AS t
//	[ORDER BY <order>] LIMIT <per_page> OFFSET <offset>
//
// The count is computed over the filtered set before LIMIT applies.
func (p *OffsetPager) Wrap(base *gorm.DB) (*gorm.DB, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	db := base.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS t", base).
		Select(fmt.Sprintf("*, COUNT(*) OVER () AS %s", TotalCountColumn))

	if p.order != nil {
		db = db.Order(p.order.String())
	}

	return db.Limit(p.perPage).Offset(p.Offset()), nil
}

func (p *OffsetPager) countQuery(base *gorm.DB) *gorm.DB {
	return base.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS t", base).
		Select("COUNT(*)")
}

// TotalPages returns ceil(total / perPage), and 0 when nothing matched.
func TotalPages(total int64, perPage int) int64 {
	if total <= 0 || perPage < 1 {
		return 0
	}

	return (total + int64(perPage) - 1) / int64(perPage)
}

// Page is one page of an offset listing.
type Page[T any] struct {
	Rows       []T
	Total      int64
	TotalPages int64
	Page       int
	PerPage    int
}

type countedRow[T any] struct {
	Row        T     `gorm:"embedded"`
	TotalCount int64 `gorm:"column:total_count"`
}

// FindPage runs the wrapped base query and splits the windowed count off the
// rows. A page past the end comes back empty; the total is then recounted so
// TotalPages stays accurate.
func FindPage[T any](ctx context.Context, base *gorm.DB, pager *OffsetPager) (*Page[T], error) {
	wrapped, err := pager.Wrap(base.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var counted []countedRow[T]
	if err = wrapped.Find(&counted).Error; err != nil {
		return nil, wrapStorage(err)
	}

	var total int64
	if len(counted) > 0 {
		total = counted[0].TotalCount
	} else if pager.Offset() > 0 {
		if err = pager.countQuery(base.WithContext(ctx)).Scan(&total).Error; err != nil {
			return nil, wrapStorage(err)
		}
	}

	return &Page[T]{
		Rows:       lo.Map(counted, func(r countedRow[T], _ int) T { return r.Row }),
		Total:      total,
		TotalPages: TotalPages(total, pager.perPage),
		Page:       pager.page,
		PerPage:    pager.perPage,
	}, nil
}
