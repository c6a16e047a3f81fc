package db

import (
	"github.com/terraincognita07/shiftdesk/internal/models"
	"gorm.io/gorm"
)

type SiteRepository struct {
	database *gorm.DB
}

func NewSiteRepository(database *gorm.DB) *SiteRepository {
	return &SiteRepository{database: database}
}

func (repo *SiteRepository) ListAll() ([]models.Site, error) {
	sites := make([]models.Site, 0)
	if err := repo.database.Order("created_at DESC, id ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (repo *SiteRepository) FindByID(siteID string) (models.Site, error) {
	var site models.Site
	if err := repo.database.Where("id = ?", siteID).First(&site).Error; err != nil {
		return models.Site{}, err
	}
	return site, nil
}

func (repo *SiteRepository) Create(site *models.Site) error {
	return repo.database.Create(site).Error
}

func (repo *SiteRepository) FindByName(name string) (models.Site, error) {
	var site models.Site
	if err := repo.database.Where("name = ?", name).First(&site).Error; err != nil {
		return models.Site{}, err
	}
	return site, nil
}
