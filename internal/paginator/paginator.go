// Package paginator splits gorm queries into fixed-size pages.
package paginator

import (
	"math"
	"strconv"

	"gorm.io/gorm"
)

// Page is one slice of a paginated collection
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

// Paginate counts the rows matched by q and loads the page selected by raw.
// A missing or non-numeric page number selects the first page; a number
// outside 1..NumPages selects the last one. Scopes are applied to the item
// query only, so ordering and preloads never reach the COUNT.
func Paginate[T any](q *gorm.DB, raw string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}

	page := NewPage[T](count, perPage, raw)
	if count == 0 {
		return page, nil
	}

	err := q.Session(&gorm.Session{}).
		Scopes(scopes...).
		Offset(page.Offset()).
		Limit(perPage).
		Find(&page.Items).Error
	if err != nil {
		return nil, err
	}
	return page, nil
}

// NewPage computes the page geometry for count rows without loading items
func NewPage[T any](count int64, perPage int, raw string) *Page[T] {
	if perPage <= 0 {
		perPage = 1
	}

	numPages := int(math.Ceil(float64(count) / float64(perPage)))
	if numPages == 0 {
		numPages = 1
	}

	return &Page[T]{
		Items:    []T{},
		Number:   resolve(raw, numPages),
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}
}

func resolve(raw string, numPages int) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 || n > numPages {
		return numPages
	}
	return n
}

func (p *Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// PageRange lists every page number, for paginator links
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
