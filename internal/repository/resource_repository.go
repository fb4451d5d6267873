package repository

import (
	"edugame_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(resource *model.Resource) error {
	return r.DB.Create(resource).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.Where("is_active = ?", true).First(&resource, id).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListActive returns active resources, newest first, optionally filtered by
// type and free-text location.
func (r *ResourceRepository) ListActive(resourceType model.ResourceType, location string, limit int) ([]model.Resource, error) {
	query := r.DB.Where("is_active = ?", true)
	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var resources []model.Resource
	err := query.Order("created_at DESC").Limit(limit).Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) ListAll() ([]model.Resource, error) {
	var resources []model.Resource
	err := r.DB.Order("created_at DESC").Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) Update(resource *model.Resource) error {
	return r.DB.Save(resource).Error
}

func (r *ResourceRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Resource{}).Where("id = ?", id).
		Update("is_active", false).Error
}
