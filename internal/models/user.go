package models

import "time"

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password,omitempty" json:"-"`
	IsGuest   bool      `bson:"is_guest" json:"is_guest"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
