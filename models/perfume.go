package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PromoTypeDiscount = "discount" // percentage off
	PromoTypePrice    = "price"    // fixed promo price
)

// Perfume is a catalog product.
type Perfume struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string                      `json:"name" gorm:"type:varchar(255);not null;index"`
	Description    string                      `json:"description" gorm:"type:text;not null"`
	Price          float64                     `json:"price" gorm:"not null"`
	Stock          int                         `json:"stock" gorm:"not null;default:0"`
	Images         datatypes.JSONSlice[string] `json:"images" gorm:"type:jsonb"`
	MainImageIndex int                         `json:"mainImageIndex" gorm:"default:0"`
	PromoEnabled   bool                        `json:"promoEnabled" gorm:"default:false"`
	PromoType      string                      `json:"promoType" gorm:"type:varchar(20);default:'discount'"`
	PromoValue     *float64                    `json:"promoValue,omitempty"`
	PromoStart     *time.Time                  `json:"promoStart,omitempty"`
	PromoEnd       *time.Time                  `json:"promoEnd,omitempty"`
	Categories     datatypes.JSONSlice[string] `json:"categories" gorm:"type:jsonb"`
	Views          int64                       `json:"views" gorm:"default:0"` // cumulative product view counter
	CreatedAt      time.Time                   `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time                   `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Perfume) TableName() string {
	return "perfumes"
}

func (p *Perfume) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// CreatePerfumeRequest for admin catalog writes
type CreatePerfumeRequest struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Price          float64    `json:"price" binding:"required,gt=0"`
	Stock          int        `json:"stock" binding:"gte=0"`
	Images         []string   `json:"images"`
	MainImageIndex int        `json:"mainImageIndex"`
	PromoEnabled   bool       `json:"promoEnabled"`
	PromoType      string     `json:"promoType" binding:"omitempty,oneof=discount price"`
	PromoValue     *float64   `json:"promoValue"`
	PromoStart     *time.Time `json:"promoStart"`
	PromoEnd       *time.Time `json:"promoEnd"`
	Categories     []string   `json:"categories"`
}

// UpdatePerfumeRequest allows partial updates
type UpdatePerfumeRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price"`
	Stock          *int       `json:"stock"`
	Images         []string   `json:"images"`
	MainImageIndex *int       `json:"mainImageIndex"`
	PromoEnabled   *bool      `json:"promoEnabled"`
	PromoType      *string    `json:"promoType"`
	PromoValue     *float64   `json:"promoValue"`
	PromoStart     *time.Time `json:"promoStart"`
	PromoEnd       *time.Time `json:"promoEnd"`
	Categories     []string   `json:"categories"`
}
