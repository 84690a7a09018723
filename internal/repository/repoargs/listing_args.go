package repoargs

type CreateListing struct {
	SellerID      int64
	Title         string
	UnitPrice     int64
	Currency      string
	TotalQuantity int64
}
