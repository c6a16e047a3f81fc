package db

import (
	"github.com/terraincognita07/shiftdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteAccessRepository struct {
	database *gorm.DB
}

func NewSiteAccessRepository(database *gorm.DB) *SiteAccessRepository {
	return &SiteAccessRepository{database: database}
}

func (repo *SiteAccessRepository) ListGrantedSiteIDs(userID string) ([]string, error) {
	siteIDs := make([]string, 0)
	if err := repo.database.Model(&models.SiteAccess{}).
		Where("user_id = ?", userID).
		Order("site_id ASC").
		Pluck("site_id", &siteIDs).Error; err != nil {
		return nil, err
	}
	return siteIDs, nil
}

func (repo *SiteAccessRepository) IsGranted(userID string, siteID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.SiteAccess{}).
		Where("user_id = ? AND site_id = ?", userID, siteID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Grant inserts the pair or returns the existing row untouched.
func (repo *SiteAccessRepository) Grant(userID string, siteID string) (models.SiteAccess, error) {
	row := models.SiteAccess{UserID: userID, SiteID: siteID}
	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "site_id"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return models.SiteAccess{}, err
	}

	var stored models.SiteAccess
	if err := repo.database.Where("user_id = ? AND site_id = ?", userID, siteID).First(&stored).Error; err != nil {
		return models.SiteAccess{}, err
	}
	return stored, nil
}

func (repo *SiteAccessRepository) Revoke(userID string, siteID string) (bool, error) {
	result := repo.database.Where("user_id = ? AND site_id = ?", userID, siteID).Delete(&models.SiteAccess{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *SiteAccessRepository) ListWithRelations() ([]models.SiteAccess, error) {
	rows := make([]models.SiteAccess, 0)
	if err := repo.database.
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email", "role")
		}).
		Preload("Site", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		}).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
