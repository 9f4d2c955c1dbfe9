package domain

import "time"

type OrderStatus string

// Orders are written exactly once, at checkout completion, so the status is
// fixed to the completed marker.
const OrderStatusCompleted OrderStatus = "completed"

// ShippingInfo is the shipping portion of the checkout form, snapshotted
// into the order.
type ShippingInfo struct {
	FullName string `json:"fullName" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	ZipCode  string `json:"zipCode" bson:"zip_code"`
	Country  string `json:"country" bson:"country"`
}

// Order is an immutable purchase record. The ID is assigned by the order
// store on save; the line items are a snapshot of the cart at purchase time.
type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Items         []CartLine   `json:"items"`
	Shipping      ShippingInfo `json:"shipping"`
	PaymentMethod string       `json:"paymentMethod"`
	Subtotal      float64      `json:"subtotal"`
	ShippingCost  float64      `json:"shippingCost"`
	Tax           float64      `json:"tax"`
	Total         float64      `json:"total"`
	Status        OrderStatus  `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}
