package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ResourceService struct {
	ResourceRepo *repository.ResourceRepository
}

func NewResourceService(resourceRepo *repository.ResourceRepository) *ResourceService {
	return &ResourceService{ResourceRepo: resourceRepo}
}

func (s *ResourceService) List(resourceType model.ResourceType, location string, limit int) ([]model.Resource, error) {
	return s.ResourceRepo.ListActive(resourceType, location, limit)
}

func (s *ResourceService) Get(id uint) (*model.Resource, error) {
	resource, err := s.ResourceRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrResourceNotFound
	}
	return resource, err
}

func (s *ResourceService) ListAll() ([]model.Resource, error) {
	return s.ResourceRepo.ListAll()
}

// ResourceRequest is the admin create/update payload.
type ResourceRequest struct {
	Type        model.ResourceType `json:"type" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`

	Company      string           `json:"company"`
	Location     string           `json:"location"`
	Salary       string           `json:"salary"`
	JobType      string           `json:"jobType"`
	Requirements model.StringList `json:"requirements"`

	Amount      string           `json:"amount"`
	Deadline    *time.Time       `json:"deadline"`
	Eligibility model.StringList `json:"eligibility"`

	Provider    string `json:"provider"`
	ServiceType string `json:"serviceType"`
	Contact     string `json:"contact"`

	Source        string     `json:"source"`
	PublishedDate *time.Time `json:"publishedDate"`
	ImageURL      string     `json:"imageUrl"`

	URL string `json:"url"`
}

func (s *ResourceService) Create(req *ResourceRequest) (*model.Resource, error) {
	resource := &model.Resource{
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Company:       req.Company,
		Location:      req.Location,
		Salary:        req.Salary,
		JobType:       req.JobType,
		Requirements:  req.Requirements,
		Amount:        req.Amount,
		Deadline:      req.Deadline,
		Eligibility:   req.Eligibility,
		Provider:      req.Provider,
		ServiceType:   req.ServiceType,
		Contact:       req.Contact,
		Source:        req.Source,
		PublishedDate: req.PublishedDate,
		ImageURL:      req.ImageURL,
		URL:           req.URL,
		IsActive:      true,
	}
	if err := s.ResourceRepo.Create(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) Update(id uint, req *ResourceRequest) (*model.Resource, error) {
	resource, err := s.ResourceRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}

	resource.Type = req.Type
	resource.Title = req.Title
	resource.Description = req.Description
	resource.Company = req.Company
	resource.Location = req.Location
	resource.Salary = req.Salary
	resource.JobType = req.JobType
	resource.Requirements = req.Requirements
	resource.Amount = req.Amount
	resource.Deadline = req.Deadline
	resource.Eligibility = req.Eligibility
	resource.Provider = req.Provider
	resource.ServiceType = req.ServiceType
	resource.Contact = req.Contact
	resource.Source = req.Source
	resource.PublishedDate = req.PublishedDate
	resource.ImageURL = req.ImageURL
	resource.URL = req.URL

	if err := s.ResourceRepo.Update(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) Delete(id uint) error {
	if _, err := s.ResourceRepo.FindByID(id); err == gorm.ErrRecordNotFound {
		return util.ErrResourceNotFound
	} else if err != nil {
		return err
	}
	return s.ResourceRepo.Deactivate(id)
}
