package utils

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/google/uuid"
)

// ParsePathID reads a required non-empty path value.
func ParsePathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", errors.BadRequestError("Missing " + name)
	}

	return id, nil
}

// ParseProductID reads a positive integer product id from the path.
func ParseProductID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.BadRequestError("Invalid product ID format").WithDetail(raw)
	}

	return id, nil
}

func ParseUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.BadRequestError("Invalid ID format").WithDetail(raw)
	}

	return id, nil
}

const maxPage = math.MaxInt32

// ParsePagination reads page and pageSize (or size) from the query string.
func ParsePagination(r *http.Request, defaultSize, maxSize int) (int, int) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	if page > maxPage {
		page = maxPage
	}

	sizeRaw := q.Get("pageSize")
	if sizeRaw == "" {
		sizeRaw = q.Get("size")
	}

	size, _ := strconv.Atoi(sizeRaw)
	if size < 1 {
		size = defaultSize
	}

	if size > maxSize {
		size = maxSize
	}

	return page, size
}

// ParseOptionalFloat returns nil when the parameter is absent.
func ParseOptionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.AddValidationError(name, "must be a number")
	}

	return &v, nil
}

// PageOffset returns the offset of a 1-based page over total items. It reports
// false when the page starts past the end, without computing (page-1)*size.
func PageOffset(page, size, total int) (int, bool) {

	if page < 1 || size < 1 {
		return 0, false
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}

	if page-1 >= pages {
		return 0, false
	}

	return (page - 1) * size, true
}
