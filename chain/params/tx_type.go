package params

const (
	CreateAsset_tx   uint8 = 1 // mint a new asset owned by the sender
	TransferAsset_tx uint8 = 2 // hand an asset over to another account
	SetAssetPrice_tx uint8 = 3 // list or delist an asset
	BuyAsset_tx      uint8 = 4 // pay the listed price and take the asset
)
