package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alp4ka/catalogpager"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service lists the library catalog. It is safe for concurrent use.
type Service struct {
	db         *gorm.DB
	builder    *catalogpager.KeysetBuilder
	logger     *zap.Logger
	metrics    *Metrics
	maxPerPage int
}

type Option func(*Service)

// WithMetrics records list latency and page sizes.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithMaxPerPage caps per_page of offset listings. Non-positive disables the
// cap.
func WithMaxPerPage(n int) Option {
	return func(s *Service) { s.maxPerPage = n }
}

func NewService(db *gorm.DB, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		db:         db,
		builder:    catalogpager.NewKeysetBuilder(Schema()),
		logger:     logger,
		maxPerPage: catalogpager.MaxItems,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MaxPerPage returns the per_page cap of offset listings.
func (s *Service) MaxPerPage() int {
	return s.maxPerPage
}

// KeysetPage is one page of a keyset listing, rows in ascending id order.
type KeysetPage[T any] struct {
	Items []T
	catalogpager.Edges
}

func listKeyset[T any](
	ctx context.Context,
	s *Service,
	entity string,
	parent *catalogpager.Key,
	filter catalogpager.PageFilter,
	key func(T) catalogpager.Key,
) (*KeysetPage[T], error) {
	logger := s.logger.With(zap.String("entity", entity), zap.Int("items", filter.Items))
	if parent != nil {
		logger = logger.With(zap.Stringer("parent", *parent))
	}

	start := time.Now()
	rows, err := catalogpager.FindKeyset[T](ctx, s.db, s.builder, entity, parent, filter)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("list failed", zap.Duration("duration", elapsed), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}

	s.metrics.observe(entity, modeKeyset, elapsed.Seconds(), len(rows))
	logger.Debug("listed page", zap.Int("rows", len(rows)), zap.Duration("duration", elapsed))

	return &KeysetPage[T]{Items: rows, Edges: catalogpager.PageEdges(rows, key)}, nil
}

// ListBooks lists books, or the books of publisher when it is not nil.
func (s *Service) ListBooks(ctx context.Context, publisher *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Book], error) {
	return listKeyset(ctx, s, EntityBooks, publisher, filter, func(b Book) catalogpager.Key { return b.ID })
}

// ListAuthors lists the authors of book. A nil book lists every person,
// editors included, since authors and editors share the persons table.
func (s *Service) ListAuthors(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Person], error) {
	return listKeyset(ctx, s, EntityAuthors, book, filter, personKey)
}

// ListEditors lists the editors of book. A nil book lists every person.
func (s *Service) ListEditors(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Person], error) {
	return listKeyset(ctx, s, EntityEditors, book, filter, personKey)
}

func (s *Service) ListPublishers(ctx context.Context, filter catalogpager.PageFilter) (*KeysetPage[Publisher], error) {
	return listKeyset(ctx, s, EntityPublishers, nil, filter, func(p Publisher) catalogpager.Key { return p.ID })
}

func (s *Service) ListSeries(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Series], error) {
	return listKeyset(ctx, s, EntitySeries, book, filter, func(r Series) catalogpager.Key { return r.ID })
}

func (s *Service) ListTags(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Tag], error) {
	return listKeyset(ctx, s, EntityTags, book, filter, func(t Tag) catalogpager.Key { return t.ID })
}

func (s *Service) ListSubjectAreas(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[SubjectArea], error) {
	return listKeyset(ctx, s, EntitySubjectAreas, book, filter, func(a SubjectArea) catalogpager.Key { return a.ID })
}

// ListCopies lists the copies of book, or every copy when book is nil.
func (s *Service) ListCopies(ctx context.Context, book *catalogpager.Key, filter catalogpager.PageFilter) (*KeysetPage[Copy], error) {
	return listKeyset(ctx, s, EntityCopies, book, filter, func(c Copy) catalogpager.Key { return c.ID })
}

func (s *Service) ListLanguages(ctx context.Context, filter catalogpager.PageFilter) (*KeysetPage[Language], error) {
	return listKeyset(ctx, s, EntityLanguages, nil, filter, func(l Language) catalogpager.Key { return l.ID })
}

func (s *Service) ListCategories(ctx context.Context, filter catalogpager.PageFilter) (*KeysetPage[Category], error) {
	return listKeyset(ctx, s, EntityCategories, nil, filter, func(c Category) catalogpager.Key { return c.ID })
}

func personKey(p Person) catalogpager.Key { return p.ID }

// BooksPage lists books by page number, ordered by id. A non-empty
// categories restricts the listing to books in any of the named categories.
func (s *Service) BooksPage(ctx context.Context, pager *catalogpager.OffsetPager, categories []string) (*catalogpager.Page[Book], error) {
	if pager == nil {
		return nil, fmt.Errorf("%w: offset pager is nil", catalogpager.ErrInvalidPageParameters)
	}

	desc, err := s.builder.Catalog().Describe(EntityBooks)
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).
		Table(desc.Table).
		Select(strings.Join(desc.QualifiedColumns(), ", "))
	if len(categories) > 0 {
		base = base.
			Joins("JOIN categories ON categories.id = books.category_id").
			Where("categories.name IN ?", categories)
	}

	ordered := *pager
	ordered.WithOrder(catalogpager.OrderBy{Column: desc.IDColumn, Direction: catalogpager.DirectionASC})

	logger := s.logger.With(
		zap.String("entity", EntityBooks),
		zap.Int("page", pager.GetPage()),
		zap.Int("per_page", pager.GetPerPage()),
		zap.Strings("categories", categories),
	)

	start := time.Now()
	page, err := catalogpager.FindPage[Book](ctx, base, &ordered)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("paged list failed", zap.Duration("duration", elapsed), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", EntityBooks, err)
	}

	s.metrics.observe(EntityBooks, modeOffset, elapsed.Seconds(), len(page.Rows))
	logger.Debug("listed page",
		zap.Int("rows", len(page.Rows)),
		zap.Int64("total", page.Total),
		zap.Duration("duration", elapsed),
	)

	return page, nil
}
