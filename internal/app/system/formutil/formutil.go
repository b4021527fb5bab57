// Package formutil reads request inputs for the JSON handlers: path ids,
// paging windows and validated bodies. Each helper writes the 400 response
// itself and reports whether the handler should continue.
//
// Example usage:
//
//	id, ok := formutil.PathID(w, r, "id", "user")
//	if !ok {
//		return
//	}
//	var in createUserInput
//	if !formutil.Bind(w, r, &in) {
//		return
//	}
package formutil

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/valids/internal/app/system/inputval"
	"github.com/dalemusser/valids/internal/app/system/paging"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PathID parses the chi URL parameter key as an ObjectID. On failure it
// writes 400 "Invalid <entity> ID format".
func PathID(w http.ResponseWriter, r *http.Request, key, entity string) (primitive.ObjectID, bool) {
	id, err := models.ParseObjectID(chi.URLParam(r, key))
	if err != nil {
		respond.BadRequest(w, "Invalid "+entity+" ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// RefID parses a foreign-key string. On failure it writes 400
// "Invalid <entity> ID format".
func RefID(w http.ResponseWriter, s, entity string) (primitive.ObjectID, bool) {
	id, err := models.ParseObjectID(s)
	if err != nil {
		respond.BadRequest(w, "Invalid "+entity+" ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Page parses skip/limit or writes 400.
func Page(w http.ResponseWriter, r *http.Request) (paging.Page, bool) {
	p, err := paging.Parse(r)
	if err != nil {
		respond.BadRequest(w, capitalize(err.Error()))
		return paging.Page{}, false
	}
	return p, true
}

// Bind decodes the JSON body into dst and runs its validate tags. The first
// failure is written as a 400 detail.
func Bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := respond.DecodeJSON(r, dst); err != nil {
		respond.BadRequest(w, err.Error())
		return false
	}
	return Validate(w, dst)
}

// Validate runs v's validate tags and writes the first failure as a 400.
func Validate(w http.ResponseWriter, v any) bool {
	if res := inputval.Validate(v); res.HasErrors() {
		respond.BadRequest(w, res.First())
		return false
	}
	return true
}

// ExistsFunc reports whether a document with id exists; store Exists
// methods satisfy it.
type ExistsFunc func(ctx context.Context, id primitive.ObjectID) (bool, error)

// RequireRef checks that a referenced document exists. It writes 404 with
// notFound when it does not and 500 when the lookup fails.
func RequireRef(ctx context.Context, w http.ResponseWriter, log *zap.Logger, exists ExistsFunc, id primitive.ObjectID, notFound string) bool {
	ok, err := exists(ctx, id)
	if err != nil {
		log.Error("reference lookup failed", zap.String("id", id.Hex()), zap.String("ref", notFound), zap.Error(err))
		respond.Internal(w)
		return false
	}
	if !ok {
		respond.NotFound(w, notFound)
		return false
	}
	return true
}

// Trim returns a trimmed copy of s, or nil when s is nil.
func Trim(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
