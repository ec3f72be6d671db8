package models

import "time"

// Shop is the public storefront of a seller. Created atomically with the
// SellerProfile; its status mirrors the seller status.
type Shop struct {
	ID          string    `bson:"id" json:"id"`
	SellerID    string    `bson:"sellerId" json:"sellerId"`
	Name        string    `bson:"name" json:"name"`
	CategoryID  string    `bson:"categoryId" json:"categoryId"`
	Description string    `bson:"description" json:"description"`
	Country     string    `bson:"country" json:"country"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VideoURL    string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
