// file: internals/features/organization/model/grade_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	GradeID uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_id" json:"grade_id"`

	GradeSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_school_id" json:"grade_school_id"`
	GradeName     string    `gorm:"type:varchar(50);not null;column:grade_name" json:"grade_name" validate:"required"`
	GradeLevel    int       `gorm:"not null;default:0;column:grade_level" json:"grade_level"`

	GradeCreatedAt time.Time      `gorm:"autoCreateTime;column:grade_created_at" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"autoUpdateTime;column:grade_updated_at" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"grade_deleted_at,omitempty"`
}

func (GradeModel) TableName() string {
	return "grades"
}

func (g *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if g.GradeID == uuid.Nil {
		g.GradeID = uuid.New()
	}
	return nil
}
