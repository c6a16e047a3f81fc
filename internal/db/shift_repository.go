package db

import (
	"fmt"
	"sync"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	database *gorm.DB
	buckets  *bucketLocks
}

func NewShiftRepository(database *gorm.DB) *ShiftRepository {
	return &ShiftRepository{
		database: database,
		buckets:  newBucketLocks(),
	}
}

func (repo *ShiftRepository) FindByID(shiftID string) (models.Shift, bool, error) {
	shift := models.Shift{}
	result := repo.database.Where("id = ?", shiftID).Limit(1).Find(&shift)
	if result.Error != nil {
		return models.Shift{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Shift{}, false, nil
	}
	return shift, true, nil
}

func (repo *ShiftRepository) FindByEmployeeDay(employeeID string, dayOfWeek int, excludeID string) ([]models.Shift, error) {
	return findByEmployeeDay(repo.database, employeeID, dayOfWeek, excludeID)
}

// CreateChecked runs guard over the employee's other shifts on the same day and
// inserts shift in the same transaction. A guard error aborts the insert.
func (repo *ShiftRepository) CreateChecked(shift *models.Shift, guard func(siblings []models.Shift) error) error {
	unlock := repo.buckets.lock(shift.UserID, shift.DayOfWeek)
	defer unlock()

	return repo.database.Transaction(func(tx *gorm.DB) error {
		siblings, err := findByEmployeeDay(tx, shift.UserID, shift.DayOfWeek, "")
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(siblings); err != nil {
				return err
			}
		}
		return tx.Omit("User", "Site").Create(shift).Error
	})
}

func (repo *ShiftRepository) UpdateChecked(shift *models.Shift, guard func(siblings []models.Shift) error) error {
	unlock := repo.buckets.lock(shift.UserID, shift.DayOfWeek)
	defer unlock()

	return repo.database.Transaction(func(tx *gorm.DB) error {
		siblings, err := findByEmployeeDay(tx, shift.UserID, shift.DayOfWeek, shift.ID)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(siblings); err != nil {
				return err
			}
		}

		result := tx.Model(&models.Shift{}).Where("id = ?", shift.ID).Updates(map[string]any{
			"user_id":     shift.UserID,
			"site_id":     shift.SiteID,
			"day_of_week": shift.DayOfWeek,
			"start_min":   shift.StartMin,
			"end_min":     shift.EndMin,
			"status":      shift.Status,
			"checklist":   shift.Checklist,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", shift.ID).First(shift).Error
	})
}

func (repo *ShiftRepository) UpdateStatus(shiftID string, status string) (models.Shift, error) {
	var updated models.Shift
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Shift{}).Where("id = ?", shiftID).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", shiftID).First(&updated).Error
	})
	if err != nil {
		return models.Shift{}, err
	}
	return updated, nil
}

func (repo *ShiftRepository) Delete(shiftID string) (bool, error) {
	result := repo.database.Where("id = ?", shiftID).Delete(&models.Shift{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ShiftRepository) ListAll() ([]models.Shift, error) {
	return repo.listWithRelations(repo.database)
}

func (repo *ShiftRepository) ListBySiteIDs(siteIDs []string) ([]models.Shift, error) {
	if len(siteIDs) == 0 {
		return []models.Shift{}, nil
	}
	return repo.listWithRelations(repo.database.Where("site_id IN ?", siteIDs))
}

func (repo *ShiftRepository) ListByUser(userID string) ([]models.Shift, error) {
	return repo.listWithRelations(repo.database.Where("user_id = ?", userID))
}

func (repo *ShiftRepository) listWithRelations(query *gorm.DB) ([]models.Shift, error) {
	shifts := make([]models.Shift, 0)
	if err := query.
		Preload("User").
		Preload("Site").
		Order("day_of_week ASC, start_min ASC, id ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func findByEmployeeDay(database *gorm.DB, employeeID string, dayOfWeek int, excludeID string) ([]models.Shift, error) {
	query := database.Where("user_id = ? AND day_of_week = ?", employeeID, dayOfWeek)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	shifts := make([]models.Shift, 0)
	if err := query.Order("start_min ASC, id ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// bucketLocks serializes checked writes per (employee, day). An entry lives only
// while some caller holds or waits on it.
type bucketLocks struct {
	mu      sync.Mutex
	buckets map[string]*bucketLock
}

type bucketLock struct {
	mu   sync.Mutex
	refs int
}

func newBucketLocks() *bucketLocks {
	return &bucketLocks{buckets: make(map[string]*bucketLock)}
}

func (locks *bucketLocks) lock(employeeID string, dayOfWeek int) func() {
	key := fmt.Sprintf("%s:%d", employeeID, dayOfWeek)

	locks.mu.Lock()
	bucket, ok := locks.buckets[key]
	if !ok {
		bucket = &bucketLock{}
		locks.buckets[key] = bucket
	}
	bucket.refs++
	locks.mu.Unlock()

	bucket.mu.Lock()
	return func() {
		bucket.mu.Unlock()

		locks.mu.Lock()
		bucket.refs--
		if bucket.refs == 0 {
			delete(locks.buckets, key)
		}
		locks.mu.Unlock()
	}
}
