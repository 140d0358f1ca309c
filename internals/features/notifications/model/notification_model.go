// file: internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey;column:notification_id" json:"notification_id"`

	NotificationUserID uuid.UUID `gorm:"type:uuid;not null;index;column:notification_user_id" json:"notification_user_id"`

	NotificationType    string            `gorm:"type:varchar(30);not null;column:notification_type" json:"notification_type"`
	NotificationPayload datatypes.JSONMap `gorm:"column:notification_payload" json:"notification_payload,omitempty"`

	NotificationIsRead bool `gorm:"not null;default:false;column:notification_is_read" json:"notification_is_read"`

	NotificationCreatedAt time.Time `gorm:"autoCreateTime;column:notification_created_at" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
