package nft

import (
	"encoding/binary"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
)

// IdContext is everything an asset id is derived from. All of it is known when a block is replayed,
// so the same mint always gets the same id.
type IdContext struct {
	ParentHash common.Hash
	Height     uint32
	TxIndex    uint32
	Count      uint32
}

// GenerateAssetId hashes parentHash | height | txIndex | count, the numbers in big endian.
func GenerateAssetId(ctx IdContext) common.Hash {
	buf := make([]byte, common.HashLength+12)
	copy(buf, ctx.ParentHash.Bytes())
	binary.BigEndian.PutUint32(buf[common.HashLength:], ctx.Height)
	binary.BigEndian.PutUint32(buf[common.HashLength+4:], ctx.TxIndex)
	binary.BigEndian.PutUint32(buf[common.HashLength+8:], ctx.Count)
	return crypto.Keccak256Hash(buf)
}
