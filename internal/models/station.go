package models

type Station struct {
	Code string `gorm:"primaryKey;size:10" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`
	City string `gorm:"size:100;not null" json:"city"`
}
