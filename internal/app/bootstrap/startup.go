// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/valids/internal/app/store/controls"
	"github.com/dalemusser/valids/internal/app/store/fields"
	"github.com/dalemusser/valids/internal/app/store/isostandards"
	"github.com/dalemusser/valids/internal/app/store/questions"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/valids/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// sampleISOName marks the seeded sample chain; its presence means the seed ran.
const sampleISOName = "ISO 27001"

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: the
// configured superadmin is created when none exists and, if enabled, the
// sample catalog is seeded.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if appCfg.SuperAdminUsername != "" {
		if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminUsername, appCfg.SuperAdminEmail, appCfg.SuperAdminPassword, logger); err != nil {
			return fmt.Errorf("ensure superadmin: %w", err)
		}
	}
	if appCfg.SeedSampleData {
		if err := seedSampleData(ctx, deps, logger); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}
	return nil
}

// ensureSuperAdmin creates the given superadmin unless any superadmin exists.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, username, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	exists, err := users.ExistsWithRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("superadmin already present; skipping bootstrap")
		return nil
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		return err
	}
	u, err := users.Create(ctx, models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleSuperAdmin,
		Password: hash,
		IsActive: true,
	})
	if err != nil {
		return err
	}

	logger.Info("created superadmin",
		zap.String("user_id", u.ID.Hex()),
		zap.String("username", u.Username))
	return nil
}

// seedSampleData inserts one field, question, control and ISO standard
// linked together, unless the sample standard already exists.
func seedSampleData(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	isoStore := isostandards.New(db)

	_, err := isoStore.GetByName(ctx, sampleISOName)
	if err == nil {
		logger.Info("sample data already present; skipping seed")
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	f, err := fields.New(db).Create(ctx, models.Field{
		Name:       "Security Level",
		Type:       models.FieldTypeSelect,
		IsRequired: true,
		Options:    []string{"Low", "Medium", "High", "Critical"},
		IsActive:   true,
	})
	if err != nil {
		return err
	}
	q, err := questions.New(db).Create(ctx, models.Question{
		Description: "What is the current security level of your organization?",
		FieldID:     models.FieldID(f.ID.Hex()),
		IsActive:    true,
	})
	if err != nil {
		return err
	}
	c, err := controls.New(db).Create(ctx, models.Control{
		Name:       "Access Control Management",
		Key:        "AC-01",
		QuestionID: models.QuestionID(q.ID.Hex()),
		IsActive:   true,
	})
	if err != nil {
		return err
	}
	desc := "Information Security Management System"
	iso, err := isoStore.Create(ctx, models.ISOStandard{
		Name:        sampleISOName,
		Description: &desc,
		ControlID:   models.ControlID(c.ID.Hex()),
		IsActive:    true,
	})
	if err != nil {
		return err
	}

	logger.Info("seeded sample data", zap.String("iso_id", iso.ID.Hex()))
	return nil
}
