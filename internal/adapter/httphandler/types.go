package httphandler

import "time"

type Toy struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Price             float64 `json:"price"`
	Category          string  `json:"category"`
	Rating            float64 `json:"rating"`
	AvailableQuantity int     `json:"availableQuantity"`
	Image             string  `json:"image,omitempty"`
	SellerName        string  `json:"sellerName,omitempty"`
}

type FavoriteEntry struct {
	ToyID   string    `json:"toyId"`
	UserID  string    `json:"userId"`
	AddedAt time.Time `json:"addedAt"`
}

// FavoriteItem joins a favorites entry with its toy. Toy is omitted when
// the liked id no longer resolves in the catalog.
type FavoriteItem struct {
	FavoriteEntry
	Toy *Toy `json:"toy,omitempty"`
}

// ToyWithCount decorates a toy with its folded favorite counter. Served
// on the detail and trending views.
type ToyWithCount struct {
	Toy
	FavoriteCount int64 `json:"favoriteCount"`
}

type Review struct {
	ID        string    `json:"id"`
	ToyID     string    `json:"toyId"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type DemoRequestInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type DemoRequestAccepted struct {
	RequestID string `json:"requestId"`
}
