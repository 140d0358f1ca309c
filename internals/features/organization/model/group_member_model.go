// file: internals/features/organization/model/group_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupMemberModel — join keanggotaan; pasangan (group, user) dijamin unik.
type GroupMemberModel struct {
	GroupMemberID uuid.UUID `gorm:"type:uuid;primaryKey;column:group_member_id" json:"group_member_id"`

	GroupMemberGroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_group_member;column:group_member_group_id" json:"group_member_group_id"`
	GroupMemberUserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_group_member;index;column:group_member_user_id" json:"group_member_user_id"`

	GroupMemberCreatedAt time.Time `gorm:"autoCreateTime;column:group_member_created_at" json:"group_member_created_at"`
}

func (GroupMemberModel) TableName() string {
	return "group_members"
}

func (m *GroupMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupMemberID == uuid.Nil {
		m.GroupMemberID = uuid.New()
	}
	return nil
}
