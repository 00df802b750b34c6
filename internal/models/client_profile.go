package models

import "time"

type ClientProfile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Goals     []string  `json:"goals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
