package entity

import "time"

type Migration struct {
	Version   int `gorm:"primarykey"`
	AppliedAt time.Time
}
