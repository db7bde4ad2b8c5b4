package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
	"github.com/vitalink-health/vitalink-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "vitalink", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres DB", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
	}
	serviceLog.Info("Connected to Postgres DB")

	if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Starting AutoMigrateAll for all GORM models now...")

	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Conversation{},
		&types.Message{},
		&types.Medication{},
		&types.Vital{},
		&types.Document{},
		&types.Notification{},
		&types.DiseaseAssessment{},
	)
	if err != nil {
		s.log.Error("AutoMigrateAll failed", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships now...")
	// -- UserToken.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "user_token"
		ADD CONSTRAINT "fk_user_token_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_user_token_user_id: %w", err)
	}
	// -- Conversation.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "conversation"
		ADD CONSTRAINT "fk_conversation_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_conversation_user_id: %w", err)
	}
	// -- Message.conversation_id => conversation.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "message"
		ADD CONSTRAINT "fk_message_conversation_id"
		FOREIGN KEY ("conversation_id")
		REFERENCES "conversation"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_message_conversation_id: %w", err)
	}
	// -- Medication.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "medication"
		ADD CONSTRAINT "fk_medication_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_medication_user_id: %w", err)
	}
	// -- Vital.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "vital"
		ADD CONSTRAINT "fk_vital_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_vital_user_id: %w", err)
	}
	// -- Document.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "document"
		ADD CONSTRAINT "fk_document_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_document_user_id: %w", err)
	}
	// -- Notification.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "notification"
		ADD CONSTRAINT "fk_notification_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_notification_user_id: %w", err)
	}
	// -- DiseaseAssessment.user_id => user.id (ON DELETE CASCADE)
	if err := s.db.Exec(`
		ALTER TABLE "disease_assessment"
		ADD CONSTRAINT "fk_disease_assessment_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_disease_assessment_user_id: %w", err)
	}
	s.log.Info("AutoMigrateAll completed successfully")

	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
