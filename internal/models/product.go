package models

import "time"

type Product struct {
	ID             string            `bson:"_id" json:"id"`
	Title          string            `bson:"title" json:"title"`
	Price          float64           `bson:"price" json:"price"`
	OriginalPrice  float64           `bson:"original_price" json:"original_price"`
	Rating         float64           `bson:"rating" json:"rating"`
	ReviewCount    int               `bson:"review_count" json:"review_count"`
	Image          string            `bson:"image" json:"image"`
	Category       string            `bson:"category" json:"category"`
	InStock        bool              `bson:"in_stock" json:"in_stock"`
	Description    string            `bson:"description" json:"description"`
	Tags           []string          `bson:"tags" json:"tags"`
	Specifications map[string]string `bson:"specifications" json:"specifications"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}
