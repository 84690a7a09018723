package repoargs

type CreateReview struct {
	OrderID  int64
	SellerID int64
	BuyerID  int64
	Rating   int
	Comment  string
}
