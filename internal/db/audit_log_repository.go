package db

import (
	"github.com/terraincognita07/paaga/internal/models"
	"gorm.io/gorm"
)

type AuditLogRepository struct {
	database *gorm.DB
}

func NewAuditLogRepository(database *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{database: database}
}

func (repo *AuditLogRepository) Create(entry *models.AuditLog) error {
	return repo.database.Create(entry).Error
}

func (repo *AuditLogRepository) ListByUser(userID string) ([]models.AuditLog, error) {
	entries := make([]models.AuditLog, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
