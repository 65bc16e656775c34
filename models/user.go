package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string     `json:"role" gorm:"type:varchar(20);default:'user';index"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, suspended, blacklisted
	Phone        *string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Address      *string    `json:"address,omitempty" gorm:"type:text"`
	State        *string    `json:"state,omitempty" gorm:"type:varchar(100);index"`
	Lga          *string    `json:"lga,omitempty" gorm:"type:varchar(100)"`
	ColorMode    string     `json:"colorMode" gorm:"column:color_mode;type:varchar(10);default:'light'"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
	SuspendedAt  *time.Time `json:"suspendedAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Phone     *string   `json:"phone"`
	State     *string   `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Phone:     u.Phone,
		State:     u.State,
		CreatedAt: u.CreatedAt,
	}
}

// CustomerRow is the admin customer-list projection
type CustomerRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	State      *string   `json:"state,omitempty"`
	OrderCount int       `json:"order_count"`
	TotalSpend float64   `json:"total_spend"`
	CreatedAt  time.Time `json:"created_at"`
}
