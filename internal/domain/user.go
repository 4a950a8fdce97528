package domain

import "time"

// CartItems maps a product id to the quantity the buyer keeps in the cart.
type CartItems map[string]int

// User is a registered buyer.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CartItems    CartItems `json:"cartItems"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
