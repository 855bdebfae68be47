package db

import (
	"github.com/terraincognita07/paaga/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepositRepository struct {
	database *gorm.DB
}

func NewDepositRepository(database *gorm.DB) *DepositRepository {
	return &DepositRepository{database: database}
}

// Upsert writes the deposit for (challenge_id, day_number) with a single
// INSERT ... ON CONFLICT DO UPDATE and reloads the stored row into deposit.
// An existing row keeps its id and created_at. The returned flag reports
// whether a new row was inserted.
func (repo *DepositRepository) Upsert(deposit *models.Deposit) (bool, error) {
	created := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		row := models.Deposit{
			ChallengeID: deposit.ChallengeID,
			DayNumber:   deposit.DayNumber,
			Amount:      deposit.Amount,
			DepositedAt: deposit.DepositedAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "challenge_id"}, {Name: "day_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "deposited_at", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		stored := models.Deposit{}
		if err := tx.
			Where("challenge_id = ? AND day_number = ?", deposit.ChallengeID, deposit.DayNumber).
			Take(&stored).Error; err != nil {
			return err
		}
		created = stored.CreatedAt.Equal(now)
		*deposit = stored
		return nil
	})
	return created, err
}

func (repo *DepositRepository) FindByID(depositID uint) (models.Deposit, bool, error) {
	deposit := models.Deposit{}
	result := repo.database.Where("id = ?", depositID).Limit(1).Find(&deposit)
	if result.Error != nil {
		return models.Deposit{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Deposit{}, false, nil
	}
	return deposit, true, nil
}

// DeleteByID reports false when no row was removed, which includes losing a
// race against another delete of the same row.
func (repo *DepositRepository) DeleteByID(depositID uint) (bool, error) {
	result := repo.database.Where("id = ?", depositID).Delete(&models.Deposit{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *DepositRepository) ListByChallenge(challengeID uint) ([]models.Deposit, error) {
	deposits := make([]models.Deposit, 0)
	if err := repo.database.
		Where("challenge_id = ?", challengeID).
		Order("day_number ASC").
		Find(&deposits).Error; err != nil {
		return nil, err
	}
	return deposits, nil
}
