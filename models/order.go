package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPaid           = "paid"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusReturned       = "returned"
)

// FulfilledStatuses is the subset of statuses counted as completed sales.
var FulfilledStatuses = []string{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered}

// OrderCustomer is the customer snapshot embedded in an order at checkout time.
type OrderCustomer struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required"`
	Address string  `json:"address" binding:"required"`
	State   string  `json:"state" binding:"required"`
	Lga     string  `json:"lga" binding:"required"`
	UserID  *string `json:"_id,omitempty"` // set when the buyer was signed in
}

// OrderCartItem is a cart line frozen into the order, including the
// promotional pricing that applied at purchase time.
type OrderCartItem struct {
	ID           string     `json:"_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Price        float64    `json:"price" binding:"required"`
	Quantity     int        `json:"quantity" binding:"required,min=1"`
	Images       []string   `json:"images,omitempty"`
	PromoEnabled bool       `json:"promoEnabled,omitempty"`
	PromoType    string     `json:"promoType,omitempty"`
	PromoValue   *float64   `json:"promoValue,omitempty"`
	PromoStart   *time.Time `json:"promoStart,omitempty"`
	PromoEnd     *time.Time `json:"promoEnd,omitempty"`
}

type Order struct {
	ID          uuid.UUID                                 `json:"id" gorm:"type:uuid;primaryKey"`
	Customer    datatypes.JSONType[OrderCustomer]         `json:"customer" gorm:"type:jsonb"`
	Cart        datatypes.JSONSlice[OrderCartItem]        `json:"cart" gorm:"type:jsonb"`
	PaystackRef string                                    `json:"paystackRef" gorm:"type:varchar(255);not null"`
	Amount      float64                                   `json:"amount" gorm:"not null"` // cart subtotal
	DeliveryFee float64                                   `json:"deliveryFee" gorm:"not null"`
	GrandTotal  float64                                   `json:"grandTotal" gorm:"not null"`
	Status      string                                    `json:"status" gorm:"type:varchar(30);default:'paid';index"`
	PaidAt      time.Time                                 `json:"paidAt" gorm:"not null"`
	ShippedAt   *time.Time                                `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time                                `json:"deliveredAt,omitempty"`
	CancelledAt *time.Time                                `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time                                 `json:"createdAt" gorm:"autoCreateTime;index"`

	// Denormalized from the customer snapshot so aggregation can filter
	// without unpacking JSONB.
	CustomerEmail  string  `json:"-" gorm:"type:varchar(255);index"`
	CustomerUserID *string `json:"-" gorm:"type:varchar(64);index"`

	UserID    *uuid.UUID `json:"user,omitempty" gorm:"type:uuid;index"`
	SessionID *string    `json:"sessionId,omitempty" gorm:"type:varchar(64);index"` // originating browsing session

	// Marketing attribution (optional)
	Campaign      *string  `json:"campaign,omitempty" gorm:"type:varchar(255);index"`
	CampaignSpend *float64 `json:"campaignSpend,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	cust := o.Customer.Data()
	o.CustomerEmail = cust.Email
	if cust.UserID != nil && *cust.UserID != "" {
		o.CustomerUserID = cust.UserID
	}
	if o.PaidAt.IsZero() {
		o.PaidAt = time.Now()
	}
	return nil
}

// CreateOrderRequest is the checkout-completion payload.
type CreateOrderRequest struct {
	Customer    OrderCustomer   `json:"customer" binding:"required"`
	Cart        []OrderCartItem `json:"cart" binding:"required,min=1,dive"`
	PaystackRef string          `json:"paystackRef" binding:"required"`
	Amount      float64         `json:"amount" binding:"required"`
	DeliveryFee float64         `json:"deliveryFee"`
	GrandTotal  float64         `json:"grandTotal" binding:"required"`
	SessionID   *string         `json:"sessionId"`
	Campaign    *string         `json:"campaign"`
}

// UpdateOrderStatusRequest for admin status transitions
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid shipped out_for_delivery delivered cancelled returned"`
}
