package domain

// CartLine is one product-id-keyed entry in the cart. Lines are keyed by
// product ID alone: SelectedSize and SelectedColor are add-time choices and
// do not participate in merge identity.
type CartLine struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}
