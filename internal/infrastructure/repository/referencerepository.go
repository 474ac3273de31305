package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"maintdesk/internal/domain/reference"
	"maintdesk/internal/infrastructure/persistence/models"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListSections(ctx context.Context) ([]reference.Section, error) {
	var sectionModels []models.SectionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sectionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	sections := make([]reference.Section, len(sectionModels))
	for i, m := range sectionModels {
		sections[i] = reference.Section{ID: m.ID, Name: m.Name}
	}
	return sections, nil
}

func (r *ReferenceRepository) ListFacilities(ctx context.Context) ([]reference.Facility, error) {
	var facilityModels []models.FacilityModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&facilityModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}

	facilities := make([]reference.Facility, len(facilityModels))
	for i, m := range facilityModels {
		facilities[i] = reference.Facility{ID: m.ID, Name: m.Name}
	}
	return facilities, nil
}

func (r *ReferenceRepository) ListTechnicians(ctx context.Context) ([]reference.Technician, error) {
	var technicianModels []models.TechnicianModel
	if err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&technicianModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}

	technicians := make([]reference.Technician, len(technicianModels))
	for i, m := range technicianModels {
		technicians[i] = reference.Technician{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			SectionID: m.SectionID,
		}
	}
	return technicians, nil
}

func (r *ReferenceRepository) ListUsers(ctx context.Context) ([]reference.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]reference.User, len(userModels))
	for i, m := range userModels {
		users[i] = reference.User{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Email:     m.Email,
		}
	}
	return users, nil
}
