package domain

// Rating is the aggregate customer rating a catalog product carries.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is catalog data. It is owned by the remote catalog service and
// read-only from this module's perspective.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      Rating  `json:"rating"`
}
