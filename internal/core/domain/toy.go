package domain

type Toy struct {
	ToyID             string
	Name              string
	Description       string // empty means the seller provided none
	Price             float64
	Category          string
	Rating            float64
	AvailableQuantity int
	ImageURL          string
	SellerName        string
}

type FavoriteCount struct {
	ToyID string
	Count int64
}
