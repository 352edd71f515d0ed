package metrics

const LevelDBPrefix = "glemo-nft/db/chaindata/"

var (
	// tx
	txModule                  = "tx"
	VerifyFailedTx_meterName  = "tx/VerifyTx/verifyFailed"
	FailedTx_meterName        = "tx/Process/failed"
	CreateAssetTx_meterName   = "tx/Process/createAsset"
	TransferAssetTx_meterName = "tx/Process/transferAsset"
	SetPriceTx_meterName      = "tx/Process/setAssetPrice"
	BuyAssetTx_meterName      = "tx/Process/buyAsset"

	// chain
	chainModule            = "chain"
	BlockProcess_timerName = "chain/Process/processBlock" // time spent executing the txs of a block
	BlockCommit_timerName  = "chain/Commit/commitBlock"
	AssetCount_gaugeName   = "chain/assets/count"
	EventPublish_meterName = "chain/Commit/publishEvents"

	// leveldb
	leveldbModule               = LevelDBPrefix
	LevelDb_get_timerName       = LevelDBPrefix + "user/gets"
	LevelDb_put_timerName       = LevelDBPrefix + "user/puts"
	LevelDb_del_timerName       = LevelDBPrefix + "user/dels"
	LevelDb_miss_meterName      = LevelDBPrefix + "user/misses" // failed get operations
	LevelDb_read_meterName      = LevelDBPrefix + "user/reads"  // bytes read by get
	LevelDb_write_meterName     = LevelDBPrefix + "user/writes" // bytes written by put
	LevelDb_compTime_meteName   = LevelDBPrefix + "user/time"
	LevelDb_compRead_meterName  = LevelDBPrefix + "user/input"
	LevelDb_compWrite_meterName = LevelDBPrefix + "user/output"
)
