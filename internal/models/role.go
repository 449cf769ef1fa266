package models

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Role struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	Authority string `gorm:"type:varchar(50);uniqueIndex;not null" json:"authority"`
}
