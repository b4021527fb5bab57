package testutil

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Calling it again on the same request adds to the existing parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

var (
	hashOnce     sync.Once
	passwordHash string
	hashErr      error
)

func hashedTestPassword(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		passwordHash, hashErr = passwords.Hash(TestPassword)
	})
	if hashErr != nil {
		t.Fatalf("hash test password: %v", hashErr)
	}
	return passwordHash
}

// CreateUser inserts an active user with TestPassword. companyID may be "".
func (f *Fixtures) CreateUser(ctx context.Context, username, role string, companyID models.CompanyID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@test.com",
		Role:      role,
		Password:  hashedTestPassword(f.t),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if companyID != "" {
		u.CompanyID = &companyID
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateSuperAdmin inserts an active superadmin without a company.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, models.RoleSuperAdmin, "")
}

// CreateField inserts an active select field.
func (f *Fixtures) CreateField(ctx context.Context, name string) models.Field {
	f.t.Helper()

	now := time.Now().UTC()
	fd := models.Field{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Type:       models.FieldTypeSelect,
		IsRequired: true,
		Options:    []string{"Low", "Medium", "High"},
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "fields", fd)
	return fd
}

// CreateQuestion inserts an active question referencing fieldID.
func (f *Fixtures) CreateQuestion(ctx context.Context, description string, fieldID models.FieldID) models.Question {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.Question{
		ID:          primitive.NewObjectID(),
		Description: description,
		FieldID:     fieldID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "questions", q)
	return q
}

// CreateControl inserts an active control referencing questionID.
func (f *Fixtures) CreateControl(ctx context.Context, name, key string, questionID models.QuestionID) models.Control {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Control{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Key:        key,
		QuestionID: questionID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "controls", c)
	return c
}

// CreateISO inserts an active ISO standard referencing controlID.
func (f *Fixtures) CreateISO(ctx context.Context, name string, controlID models.ControlID) models.ISOStandard {
	f.t.Helper()

	now := time.Now().UTC()
	iso := models.ISOStandard{
		ID:        primitive.NewObjectID(),
		Name:      name,
		ControlID: controlID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "iso", iso)
	return iso
}

// Chain is a linked field → question → control → ISO set.
type Chain struct {
	Field    models.Field
	Question models.Question
	Control  models.Control
	ISO      models.ISOStandard
}

// CreateChain inserts a complete field → question → control → ISO chain.
func (f *Fixtures) CreateChain(ctx context.Context, prefix string) Chain {
	f.t.Helper()

	fd := f.CreateField(ctx, prefix+" field")
	q := f.CreateQuestion(ctx, prefix+" question?", models.FieldID(fd.ID.Hex()))
	c := f.CreateControl(ctx, prefix+" control", prefix+"-01", models.QuestionID(q.ID.Hex()))
	iso := f.CreateISO(ctx, prefix+" ISO", models.ControlID(c.ID.Hex()))
	return Chain{Field: fd, Question: q, Control: c, ISO: iso}
}

// CreateCompany inserts an active company owned by ownerID for isoID.
func (f *Fixtures) CreateCompany(ctx context.Context, name string, ownerID models.UserID, isoID models.ISOID) models.Company {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Company{
		ID:        primitive.NewObjectID(),
		Name:      name,
		UserID:    ownerID,
		ISOID:     isoID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "companies", c)
	return c
}

// CreateSubmission inserts a submission with the given status and data.
func (f *Fixtures) CreateSubmission(ctx context.Context, userID models.UserID, companyID models.CompanyID, isoID models.ISOID, status models.SubmissionStatus, data map[string]any) models.Submission {
	f.t.Helper()

	now := time.Now().UTC()
	if data == nil {
		data = map[string]any{}
	}
	s := models.Submission{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CompanyID: companyID,
		ISOID:     isoID,
		Status:    status,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "submissions", s)
	return s
}

// CreateAssignment inserts an active question assignment.
func (f *Fixtures) CreateAssignment(ctx context.Context, userID models.UserID, assignedBy models.UserID, questionIDs ...models.QuestionID) models.QuestionAssignment {
	f.t.Helper()

	a := models.QuestionAssignment{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		QuestionIDs: questionIDs,
		AssignedBy:  assignedBy,
		AssignedAt:  time.Now().UTC(),
		IsActive:    true,
	}
	f.insert(ctx, "question_assignments", a)
	return a
}
