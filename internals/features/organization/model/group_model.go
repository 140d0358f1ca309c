// file: internals/features/organization/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupModel struct {
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`

	GroupGradeID   uuid.UUID  `gorm:"type:uuid;not null;index;column:group_grade_id" json:"group_grade_id"`
	GroupName      string     `gorm:"type:varchar(50);not null;column:group_name" json:"group_name" validate:"required"`
	GroupTeacherID *uuid.UUID `gorm:"type:uuid;column:group_teacher_id" json:"group_teacher_id,omitempty"`

	GroupCreatedAt time.Time      `gorm:"autoCreateTime;column:group_created_at" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"autoUpdateTime;column:group_updated_at" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"group_deleted_at,omitempty"`
}

func (GroupModel) TableName() string {
	return "groups"
}

func (g *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if g.GroupID == uuid.Nil {
		g.GroupID = uuid.New()
	}
	return nil
}
