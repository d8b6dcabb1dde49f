package model

import "time"

type Board struct {
	ID             uint64 `json:"id" gorm:"primaryKey"`
	Name           string `json:"name"`
	Address        uint16 `json:"address"`
	Firmware       string `json:"firmware"`
	DebounceTimeMs int    `json:"debounceTimeMs"`
}

type ButtonEvent struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	BoardID   uint64    `json:"boardID"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}
