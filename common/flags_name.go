package common

// command line flag names
const (
	DataDir   = "datadir"
	LogLevel  = "loglevel"
	LogToFile = "logfile"
	ShowCode  = "showcode"
	KeyHex    = "key"
	Recipient = "to"
	AssetId   = "asset"
	Price     = "price"
	Account   = "account"
)
