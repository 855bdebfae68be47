package db

import (
	"time"

	"github.com/terraincognita07/paaga/internal/models"
	"gorm.io/gorm"
)

type ChallengeRepository struct {
	database *gorm.DB
}

func NewChallengeRepository(database *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{database: database}
}

// CreateUnlessOpen inserts challenge only when the user has no challenge whose
// window ends on or after today. The check and the insert are one statement,
// so concurrent calls for the same user cannot both succeed.
func (repo *ChallengeRepository) CreateUnlessOpen(challenge *models.Challenge, today time.Time) (bool, error) {
	inserted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		result := tx.Exec(`
INSERT INTO challenges (user_id, start_date, window_end, created_at, updated_at)
SELECT ?, ?, ?, ?, ?
WHERE NOT EXISTS (
  SELECT 1 FROM challenges WHERE user_id = ? AND window_end >= ?
)`,
			challenge.UserID, challenge.StartDate, challenge.WindowEnd, now, now,
			challenge.UserID, today,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		stored := models.Challenge{}
		if err := tx.Where("user_id = ?", challenge.UserID).Order("id DESC").Take(&stored).Error; err != nil {
			return err
		}
		*challenge = stored
		inserted = true
		return nil
	})
	return inserted, err
}

func (repo *ChallengeRepository) FindByID(challengeID uint) (models.Challenge, bool, error) {
	challenge := models.Challenge{}
	result := repo.database.Where("id = ?", challengeID).Limit(1).Find(&challenge)
	if result.Error != nil {
		return models.Challenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Challenge{}, false, nil
	}
	return challenge, true, nil
}

func (repo *ChallengeRepository) FindLatestByUser(userID string) (models.Challenge, bool, error) {
	challenge := models.Challenge{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&challenge)
	if result.Error != nil {
		return models.Challenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Challenge{}, false, nil
	}
	return challenge, true, nil
}

func (repo *ChallengeRepository) ListByUser(userID string) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ChallengeRepository) UpdateStartDate(challengeID uint, startDate time.Time, windowEnd time.Time) (models.Challenge, bool, error) {
	updated := models.Challenge{}
	found := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Challenge{}).
			Where("id = ?", challengeID).
			Updates(map[string]any{
				"start_date": startDate,
				"window_end": windowEnd,
				"updated_at": tx.NowFunc(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Where("id = ?", challengeID).Take(&updated).Error
	})
	if err != nil {
		return models.Challenge{}, false, err
	}
	return updated, found, nil
}

// LoadWithDeposits reads a challenge and its deposits from one snapshot.
func (repo *ChallengeRepository) LoadWithDeposits(challengeID uint) (models.Challenge, []models.Deposit, bool, error) {
	challenge := models.Challenge{}
	deposits := make([]models.Deposit, 0)
	found := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", challengeID).Limit(1).Find(&challenge)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Where("challenge_id = ?", challengeID).Order("day_number ASC").Find(&deposits).Error
	})
	if err != nil || !found {
		return models.Challenge{}, nil, false, err
	}
	return challenge, deposits, true, nil
}
