package models

// TaskLabel is the join row behind Task.Labels. Removing a task drops its
// rows; removing a label that is still attached is rejected by the database.
type TaskLabel struct {
	TaskID  uint64 `gorm:"primarykey" json:"task_id"`
	LabelID uint64 `gorm:"primarykey;index" json:"label_id"`

	// Relations
	Task  Task  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Label Label `gorm:"foreignKey:LabelID;constraint:OnDelete:RESTRICT" json:"-"`
}
