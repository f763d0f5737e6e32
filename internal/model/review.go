package model

import "time"

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
