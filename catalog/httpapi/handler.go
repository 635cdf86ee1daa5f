package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Alp4ka/catalogpager"
	"github.com/Alp4ka/catalogpager/catalog"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// KeysetResponse is one page of a keyset listing. After and Before are the
// keys to pass back as "after" and "before" to fetch the adjacent pages;
// NextCursor and PrevCursor are the same positions as opaque tokens.
type KeysetResponse[T any] struct {
	Items      []T               `json:"items"`
	After      *catalogpager.Key `json:"after,omitempty"`
	Before     *catalogpager.Key `json:"before,omitempty"`
	NextCursor string            `json:"next_cursor,omitempty"`
	PrevCursor string            `json:"prev_cursor,omitempty"`
}

// OffsetResponse is one page of an offset listing.
type OffsetResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// Handler serves the catalog listings.
type Handler struct {
	service      *catalog.Service
	logger       *zap.Logger
	defaultItems int
	maxItems     int
}

type HandlerOption func(*Handler)

// WithItems sets the page size used when "items" is absent and the cap
// applied to it.
func WithItems(defaultItems, maxItems int) HandlerOption {
	return func(h *Handler) {
		h.defaultItems = defaultItems
		h.maxItems = maxItems
	}
}

func NewHandler(service *catalog.Service, logger *zap.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{
		service:      service,
		logger:       logger,
		defaultItems: catalogpager.DefaultItems,
		maxItems:     catalogpager.MaxItems,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Register mounts the listing routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/books", keyset(h, h.service.ListBooks, noParent))
	r.GET("/books/paged", h.BooksPage)
	r.GET("/authors", keyset(h, h.service.ListAuthors, noParent))
	r.GET("/editors", keyset(h, h.service.ListEditors, noParent))
	r.GET("/copies", keyset(h, h.service.ListCopies, noParent))
	r.GET("/publishers", keyset(h, unscoped(h.service.ListPublishers), noParent))
	r.GET("/series", keyset(h, h.service.ListSeries, noParent))
	r.GET("/tags", keyset(h, h.service.ListTags, noParent))
	r.GET("/subject-areas", keyset(h, h.service.ListSubjectAreas, noParent))
	r.GET("/languages", keyset(h, unscoped(h.service.ListLanguages), noParent))
	r.GET("/categories", keyset(h, unscoped(h.service.ListCategories), noParent))

	book := r.Group("/books/:id")
	book.GET("/authors", keyset(h, h.service.ListAuthors, pathParent))
	book.GET("/editors", keyset(h, h.service.ListEditors, pathParent))
	book.GET("/series", keyset(h, h.service.ListSeries, pathParent))
	book.GET("/tags", keyset(h, h.service.ListTags, pathParent))
	book.GET("/subject-areas", keyset(h, h.service.ListSubjectAreas, pathParent))
	book.GET("/copies", keyset(h, h.service.ListCopies, pathParent))

	r.GET("/publishers/:id/books", keyset(h, h.service.ListBooks, pathParent))
}

type listFunc[T any] func(ctx context.Context, parent *catalogpager.Key, filter catalogpager.PageFilter) (*catalog.KeysetPage[T], error)

func unscoped[T any](fn func(context.Context, catalogpager.PageFilter) (*catalog.KeysetPage[T], error)) listFunc[T] {
	return func(ctx context.Context, _ *catalogpager.Key, filter catalogpager.PageFilter) (*catalog.KeysetPage[T], error) {
		return fn(ctx, filter)
	}
}

type parentFunc func(c *gin.Context) (*catalogpager.Key, error)

func noParent(*gin.Context) (*catalogpager.Key, error) { return nil, nil }

func pathParent(c *gin.Context) (*catalogpager.Key, error) {
	id, err := catalogpager.ParseKey(c.Param("id"))
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", errInvalidParameter, err)
	}

	return &id, nil
}

func keyset[T any](h *Handler, list listFunc[T], parent parentFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentKey, err := parent(c)
		if err != nil {
			h.fail(c, err)
			return
		}

		filter, err := h.pageFilter(c)
		if err != nil {
			h.fail(c, err)
			return
		}

		page, err := list(c.Request.Context(), parentKey, filter)
		if err != nil {
			h.fail(c, err)
			return
		}

		resp := KeysetResponse[T]{Items: page.Items}
		if page.Next != nil {
			k := page.Next.Key()
			resp.After = &k
			resp.NextCursor = page.Next.String()
		}
		if page.Prev != nil {
			k := page.Prev.Key()
			resp.Before = &k
			resp.PrevCursor = page.Prev.String()
		}

		c.JSON(http.StatusOK, resp)
	}
}

// BooksPage serves GET /books/paged?page=&per_page=&category=.
func (h *Handler) BooksPage(c *gin.Context) {
	var raw catalogpager.RawOffsetPager

	var err error
	if raw.Page, err = queryInt(c, "page"); err != nil {
		h.fail(c, err)
		return
	}
	if raw.PerPage, err = queryInt(c, "per_page"); err != nil {
		h.fail(c, err)
		return
	}

	pager, err := raw.Decode(h.service.MaxPerPage())
	if err != nil {
		h.fail(c, err)
		return
	}

	categories := lo.Compact(c.QueryArray("category"))

	page, err := h.service.BooksPage(c.Request.Context(), pager, categories)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, OffsetResponse[catalog.Book]{
		Items:      page.Rows,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PerPage:    page.PerPage,
	})
}

// pageFilter parses after, before, cursor and items.
func (h *Handler) pageFilter(c *gin.Context) (catalogpager.PageFilter, error) {
	raw := catalogpager.RawPageFilter{Cursor: c.Query("cursor")}

	var err error
	if raw.After, err = queryKey(c, "after"); err != nil {
		return catalogpager.PageFilter{}, err
	}
	if raw.Before, err = queryKey(c, "before"); err != nil {
		return catalogpager.PageFilter{}, err
	}
	if raw.Items, err = queryInt(c, "items"); err != nil {
		return catalogpager.PageFilter{}, err
	}
	if raw.Items == nil {
		raw.Items = lo.ToPtr(h.defaultItems)
	}

	return raw.DecodeMax(h.maxItems)
}

func queryKey(c *gin.Context, name string) (*catalogpager.Key, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}

	k, err := catalogpager.ParseKey(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidParameter, name, err)
	}

	return &k, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errInvalidParameter, name, err)
	}

	return &n, nil
}
