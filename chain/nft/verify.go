package nft

import (
	"errors"
	"fmt"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"gopkg.in/fatih/set.v0"
)

var ErrLedgerBroken = errors.New("asset ledger is inconsistent")

// LedgerIterator reads the whole committed ledger
type LedgerIterator interface {
	GetAssetCount() (uint32, error)
	IterateAssets(fn func(*types.Asset) error) error
	IterateOwned(fn func(common.Address, []common.Hash) error) error
}

func broken(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrLedgerBroken, fmt.Sprintf(format, args...))
}

// VerifyLedger checks that the counter equals the number of assets, and that every asset is listed
// exactly once, in its owner's list, which is not over capacity.
func VerifyLedger(db LedgerIterator, maxOwned int) error {
	owners := make(map[common.Hash]common.Address)
	err := db.IterateAssets(func(asset *types.Asset) error {
		owners[asset.Id] = asset.Owner
		return nil
	})
	if err != nil {
		return err
	}
	count, err := db.GetAssetCount()
	if err != nil {
		return err
	}
	if int(count) != len(owners) {
		return broken("count is %d but there are %d assets", count, len(owners))
	}

	listed := set.New(set.NonThreadSafe)
	err = db.IterateOwned(func(owner common.Address, ids []common.Hash) error {
		if len(ids) > maxOwned {
			return broken("%s owns %d assets, more than %d", owner.Hex(), len(ids), maxOwned)
		}
		for _, id := range ids {
			if listed.Has(id) {
				return broken("asset %s is listed more than once", id.Hex())
			}
			listed.Add(id)
			realOwner, ok := owners[id]
			if !ok {
				return broken("asset %s in the list of %s does not exist", id.Hex(), owner.Hex())
			}
			if realOwner != owner {
				return broken("asset %s of %s is listed under %s", id.Hex(), realOwner.Hex(), owner.Hex())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if listed.Size() != len(owners) {
		return broken("%d assets are not in any owned list", len(owners)-listed.Size())
	}
	return nil
}
