package models

import "time"

type Project struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	OwnerAddress string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_projects_owner_project;uniqueIndex:idx_projects_owner_position"`
	ProjectID    string    `gorm:"column:project_id;type:varchar(255);not null;uniqueIndex:idx_projects_owner_project"`
	Position     int       `gorm:"not null;uniqueIndex:idx_projects_owner_position"`
	PaidAmount   string    `gorm:"type:varchar(78);not null;default:'0'"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (Project) TableName() string {
	return "projects"
}
