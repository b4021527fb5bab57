// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/valids/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and attaches JSON-Schema
// validators. Servers without collMod support are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema, logger); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("companies", companiesSchema())
	ensure("iso", isoSchema())
	ensure("controls", controlsSchema())
	ensure("questions", questionsSchema())
	ensure("fields", fieldsSchema())
	ensure("submissions", submissionsSchema())
	ensure("question_assignments", assignmentsSchema())

	// Written by the audit logger only; no validator.
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection returns created==true only if it actually created name.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		logger.Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	logger.Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, logger *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	logger.Debug("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* -------------------------------- schemas -------------------------------- */

func jsonSchema(required []string, props bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": props,
	}}
}

func stringEnum(values []string) bson.M {
	return bson.M{"bsonType": "string", "enum": values}
}

func boundedString(min, max int) bson.M {
	return bson.M{"bsonType": "string", "minLength": min, "maxLength": max}
}

var objectIDString = bson.M{"bsonType": "string", "pattern": "^[0-9a-fA-F]{24}$"}

func usersSchema() bson.M {
	return jsonSchema(
		[]string{"username", "email", "roletype", "password", "is_active"},
		bson.M{
			"username":  boundedString(3, 50),
			"email":     bson.M{"bsonType": "string"},
			"roletype":  stringEnum(models.AllRoles),
			"password":  bson.M{"bsonType": "string"},
			"is_active": bson.M{"bsonType": "bool"},
			"company_id": bson.M{"oneOf": []bson.M{
				{"bsonType": "null"},
				objectIDString,
			}},
		},
	)
}

func companiesSchema() bson.M {
	return jsonSchema(
		[]string{"company_name", "user_id", "iso_id", "is_active"},
		bson.M{
			"company_name": boundedString(1, 200),
			"user_id":      objectIDString,
			"iso_id":       objectIDString,
			"is_active":    bson.M{"bsonType": "bool"},
		},
	)
}

func isoSchema() bson.M {
	return jsonSchema(
		[]string{"iso_name", "control_id", "is_active"},
		bson.M{
			"iso_name":   boundedString(1, 200),
			"control_id": objectIDString,
			"is_active":  bson.M{"bsonType": "bool"},
		},
	)
}

func controlsSchema() bson.M {
	return jsonSchema(
		[]string{"control_name", "control_key", "question_id", "is_active"},
		bson.M{
			"control_name": boundedString(1, 200),
			"control_key":  boundedString(1, 50),
			"question_id":  objectIDString,
			"is_active":    bson.M{"bsonType": "bool"},
		},
	)
}

func questionsSchema() bson.M {
	return jsonSchema(
		[]string{"description", "fields_id", "is_active"},
		bson.M{
			"description": boundedString(1, 2000),
			"fields_id":   objectIDString,
			"is_active":   bson.M{"bsonType": "bool"},
		},
	)
}

func fieldsSchema() bson.M {
	return jsonSchema(
		[]string{"field_name", "fieldType", "is_active"},
		bson.M{
			"field_name": boundedString(1, 200),
			"fieldType":  boundedString(1, 50),
			"isRequired": bson.M{"bsonType": "bool"},
			"options": bson.M{"oneOf": []bson.M{
				{"bsonType": "null"},
				{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			}},
			"is_active": bson.M{"bsonType": "bool"},
		},
	)
}

func submissionsSchema() bson.M {
	return jsonSchema(
		[]string{"user_id", "company_id", "iso_id", "status", "submission_data"},
		bson.M{
			"user_id":         objectIDString,
			"company_id":      objectIDString,
			"iso_id":          objectIDString,
			"status":          stringEnum(models.SubmissionStatusStrings()),
			"submission_data": bson.M{"bsonType": "object"},
			"progress_percentage": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  100,
			},
		},
	)
}

func assignmentsSchema() bson.M {
	return jsonSchema(
		[]string{"user_id", "question_ids", "assigned_by", "is_active"},
		bson.M{
			"user_id":      objectIDString,
			"question_ids": bson.M{"bsonType": "array", "items": objectIDString},
			"assigned_by":  objectIDString,
			"is_active":    bson.M{"bsonType": "bool"},
		},
	)
}
