// internal/app/system/paging/paging.go
package paging

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is used when the request has no "limit" parameter.
	DefaultLimit = 100
	// MaxLimit is the largest page a client may request.
	MaxLimit = 1000
)

var (
	ErrBadSkip  = errors.New("skip must be a non-negative integer")
	ErrBadLimit = errors.New("limit must be an integer between 1 and 1000")
)

// Page is an offset window over a list endpoint.
type Page struct {
	Skip  int64
	Limit int64
}

// Parse reads the "skip" and "limit" query parameters.
// Missing values default to 0 and DefaultLimit; out-of-range values are errors.
func Parse(r *http.Request) (Page, error) {
	p := Page{Skip: 0, Limit: DefaultLimit}

	if s := query.Get(r, "skip"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return Page{}, ErrBadSkip
		}
		p.Skip = n
	}
	if s := query.Get(r, "limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 || n > MaxLimit {
			return Page{}, ErrBadLimit
		}
		p.Limit = n
	}
	return p, nil
}

// FindOptions returns find options for this page in insertion order.
func (p Page) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(p.Skip).
		SetLimit(p.Limit)
}
