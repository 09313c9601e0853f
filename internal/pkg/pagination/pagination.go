package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kokiddp/elkcms/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	defaultSize = 10
	maxSize     = 100
)

// Query holds validated pagination parameters for one list request.
type Query struct {
	Page int
	Size int
}

// Offset returns the row offset of the page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads page and size from the query string. Size accepts
// per_page as an alias and is clamped to 100.
func FromContext(c *gin.Context) Query {
	q := Query{Page: intParam(c, "page", 1), Size: intParam(c, "size", 0)}
	if q.Size <= 0 {
		q.Size = intParam(c, "per_page", defaultSize)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = defaultSize
	}
	if q.Size > maxSize {
		q.Size = maxSize
	}
	return q
}

// Paginate counts the query, loads one page of rows into dest and returns
// the metadata for the response envelope.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}

func intParam(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
