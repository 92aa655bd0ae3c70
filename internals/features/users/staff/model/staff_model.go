package model

import (
	"time"

	"github.com/google/uuid"
)

type StaffModel struct {
	StaffID       uuid.UUID `gorm:"column:staff_id;type:uuid;default:uuid_generate_v4();primaryKey" json:"staff_id"`
	StaffUserName string    `gorm:"column:staff_user_name;type:varchar(50);not null;uniqueIndex" json:"staff_user_name"`
	StaffFullName string    `gorm:"column:staff_full_name;type:varchar(100);not null" json:"staff_full_name"`
	StaffEmail    *string   `gorm:"column:staff_email;type:varchar(255);uniqueIndex" json:"staff_email,omitempty"`
	StaffPhone    *string   `gorm:"column:staff_phone;type:varchar(20)" json:"staff_phone,omitempty"`

	// bcrypt hash, never serialized
	StaffPassword string `gorm:"column:staff_password;type:text;not null" json:"-"`

	StaffRole     string  `gorm:"column:staff_role;type:varchar(20);not null;default:'STAFF'" json:"staff_role"`
	StaffGoogleID *string `gorm:"column:staff_google_id;type:varchar(64);uniqueIndex" json:"-"`
	StaffIsActive bool    `gorm:"column:staff_is_active;not null;default:true" json:"staff_is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StaffModel) TableName() string {
	return "staffs"
}
