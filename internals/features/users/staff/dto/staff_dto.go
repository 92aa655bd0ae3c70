package dto

import (
	"time"

	"github.com/google/uuid"

	"isp392_backend/internals/features/users/staff/model"
)

type CreateStaffRequest struct {
	UserName string  `json:"username" validate:"required,min=3,max=50"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=MANAGER STAFF CHEF"`
}

type UpdateStaffRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Role     *string `json:"role" validate:"omitempty,oneof=MANAGER STAFF CHEF"`
	IsActive *bool   `json:"is_active"`
}

type StaffResponse struct {
	StaffID   uuid.UUID `json:"staff_id"`
	UserName  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToStaffResponse(m model.StaffModel) StaffResponse {
	return StaffResponse{
		StaffID:   m.StaffID,
		UserName:  m.StaffUserName,
		FullName:  m.StaffFullName,
		Email:     m.StaffEmail,
		Phone:     m.StaffPhone,
		Role:      m.StaffRole,
		IsActive:  m.StaffIsActive,
		CreatedAt: m.CreatedAt,
	}
}

func ToStaffResponses(ms []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStaffResponse(m))
	}
	return out
}
