package models

type SectionModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

func (SectionModel) TableName() string {
	return "sections"
}

type FacilityModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

func (FacilityModel) TableName() string {
	return "facilities"
}

type TechnicianModel struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	SectionID uint   `gorm:"not null;index"`
}

func (TechnicianModel) TableName() string {
	return "technicians"
}

type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
}

func (UserModel) TableName() string {
	return "users"
}
