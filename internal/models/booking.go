package models

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
)

type PaymentMethod string

const (
	MethodBkash PaymentMethod = "bkash"
	MethodNagad PaymentMethod = "nagad"
	MethodCard  PaymentMethod = "card"
	MethodCash  PaymentMethod = "cash"
)

// ParsePaymentMethod normalizes a client supplied method name.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MethodBkash, MethodNagad, MethodCard, MethodCash:
		return m, true
	}
	return "", false
}

// Booking is a single-passenger reservation. The PNR is the booking's identity.
type Booking struct {
	PNR               string         `gorm:"primaryKey;size:10" json:"pnr"`
	UserID            string         `gorm:"size:64;not null;index" json:"user_id"`
	TrainID           uint           `gorm:"not null;index" json:"train_id"`
	OriginCode        string         `gorm:"size:10;not null" json:"origin_code"`
	DestinationCode   string         `gorm:"size:10;not null" json:"destination_code"`
	JourneyDate       time.Time      `gorm:"type:date;not null" json:"journey_date"`
	DistanceKm        float64        `gorm:"type:numeric(8,2);not null" json:"distance_km"`
	BaseFare          float64        `gorm:"type:numeric(10,2);not null" json:"base_fare"`
	ReservationCharge float64        `gorm:"type:numeric(10,2);not null" json:"reservation_charge"`
	Tax               float64        `gorm:"type:numeric(10,2);not null" json:"tax"`
	TotalFare         float64        `gorm:"type:numeric(10,2);not null" json:"total_fare"`
	PaymentStatus     PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod     *PaymentMethod `gorm:"type:varchar(10)" json:"payment_method,omitempty"`
	TransactionID     *string        `gorm:"size:15;uniqueIndex" json:"transaction_id,omitempty"`
	PaymentDate       *time.Time     `json:"payment_date,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Train       *Train   `gorm:"foreignKey:TrainID;constraint:OnDelete:RESTRICT" json:"train,omitempty"`
	Origin      *Station `gorm:"foreignKey:OriginCode;references:Code;constraint:OnDelete:RESTRICT" json:"origin,omitempty"`
	Destination *Station `gorm:"foreignKey:DestinationCode;references:Code;constraint:OnDelete:RESTRICT" json:"destination,omitempty"`
}

func (b *Booking) Paid() bool {
	return b.PaymentStatus == PaymentSuccess
}
