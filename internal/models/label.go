package models

import "time"

type Label struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(1000);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
