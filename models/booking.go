package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`

	CustomerID uint `gorm:"index;column:customer_id" json:"customerId"`
	ListingID  uint `gorm:"index;column:listing_id" json:"listingId"`

	FromDate *time.Time `gorm:"column:from_date;index" json:"fromDate,omitempty"`
	ToDate   *time.Time `gorm:"column:to_date" json:"toDate,omitempty"`
	Nights   int        `gorm:"column:nights" json:"nights,omitempty"`

	PaymentStatus string `gorm:"column:payment_status;size:16;default:unpaid" json:"paymentStatus"`

	// The single outstanding invite token. Empty means none issued yet.
	// Acceptance checks stored-value equality, so overwriting this field
	// revokes any previously shared link.
	Token string `gorm:"column:token;size:512" json:"-"`

	Customer User    `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Listing  Listing `gorm:"foreignKey:ListingID;references:ID" json:"listing,omitempty"`

	// Guest membership is the booking_guests join table. The composite
	// primary key gives set semantics at the database, so a concurrent
	// double accept cannot create a duplicate row.
	Guests []User `gorm:"many2many:booking_guests" json:"guests,omitempty"`
}
