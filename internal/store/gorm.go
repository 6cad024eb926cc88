package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/relokit/vault/internal/models"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Document{},
		&models.Reminder{},
		&models.Profile{},
		&models.Municipality{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStoreWithDB wraps an already-open gorm DB. Used by tests.
func NewGormStoreWithDB(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (s *GormStore) DocumentByID(ctx context.Context, userID, id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (s *GormStore) DocumentsByIDs(ctx context.Context, userID string, ids []string) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("lookup documents: %w", err)
	}
	return docs, nil
}

func (s *GormStore) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *GormStore) UpdateClassification(ctx context.Context, userID, id string, docType models.DocumentType, fields map[string]interface{}) (*models.Document, error) {
	doc, err := s.DocumentByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	doc.DocumentType = docType
	doc.ExtractedFields = datatypes.JSONMap(fields)
	if err := s.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, fmt.Errorf("update classification: %w", err)
	}
	return doc, nil
}

func (s *GormStore) SoftDeleteDocument(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Document{})
	if res.Error != nil {
		return fmt.Errorf("delete document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) PurgeCandidates(ctx context.Context, threshold time.Time) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", threshold).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("purge candidates: %w", err)
	}
	return docs, nil
}

func (s *GormStore) HardDeleteDocument(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&models.Document{}).Error
	if err != nil {
		return fmt.Errorf("hard delete document: %w", err)
	}
	return nil
}

func (s *GormStore) StoragePathInUse(ctx context.Context, key string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Unscoped().
		Model(&models.Document{}).
		Where("storage_path = ?", key).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check storage path: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) CreateReminders(ctx context.Context, reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&reminders).Error; err != nil {
		return fmt.Errorf("create reminders: %w", err)
	}
	return nil
}

func (s *GormStore) ListReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reminder_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *GormStore) ReminderByID(ctx context.Context, userID, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return &reminder, nil
}

func (s *GormStore) SnoozeReminder(ctx context.Context, userID, id string, until time.Time) (*models.Reminder, error) {
	reminder, err := s.ReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	reminder.Status = models.ReminderSnoozed
	reminder.SnoozedUntil = &until
	if err := s.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return nil, fmt.Errorf("snooze reminder: %w", err)
	}
	return reminder, nil
}

func (s *GormStore) CompleteReminder(ctx context.Context, userID, id string) (*models.Reminder, error) {
	reminder, err := s.ReminderByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	reminder.Status = models.ReminderCompleted
	reminder.SnoozedUntil = nil
	if err := s.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return nil, fmt.Errorf("complete reminder: %w", err)
	}
	return reminder, nil
}

func (s *GormStore) DueReminders(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("status = ? AND reminder_date <= ?", models.ReminderPending, now).
		Order("reminder_date ASC").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	return reminders, nil
}

func (s *GormStore) WakeSnoozed(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("status = ? AND snoozed_until <= ?", models.ReminderSnoozed, now).
		Updates(map[string]interface{}{
			"status":        models.ReminderPending,
			"snoozed_until": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("wake snoozed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) MarkReminderStatus(ctx context.Context, id string, status models.ReminderStatus) error {
	err := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("mark reminder %s: %w", status, err)
	}
	return nil
}

func (s *GormStore) ProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (s *GormStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *GormStore) MunicipalityByCode(ctx context.Context, code string) (*models.Municipality, error) {
	var m models.Municipality
	err := s.db.WithContext(ctx).
		Where("code = ?", code).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get municipality: %w", err)
	}
	return &m, nil
}
