package transaction

import (
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/nft"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
)

// RunNftEnv runs the ledger operations. The collaborators are injected so that the ledger
// doesn't depend on how currency and events are implemented.
type RunNftEnv struct {
	ledger   *nft.Manager
	currency Currency
	emitter  EventEmitter
}

func NewRunNftEnv(ledger *nft.Manager, currency Currency, emitter EventEmitter) *RunNftEnv {
	return &RunNftEnv{
		ledger:   ledger,
		currency: currency,
		emitter:  emitter,
	}
}

// CreateAssetTx mints an asset for caller. The id is derived from ctx and the current asset count
func (r *RunNftEnv) CreateAssetTx(caller common.Address, ctx nft.IdContext) (common.Hash, error) {
	ctx.Count = r.ledger.Count()
	id := nft.GenerateAssetId(ctx)
	if err := r.ledger.Mint(caller, id); err != nil {
		log.Debugf("Mint asset %s fail: %v", id.Prefix(), err)
		return common.Hash{}, err
	}
	r.emitter.Emit(types.NewCreatedEvent(caller, id))
	return id, nil
}

// TransferTx hands the asset over to another account. The listing price is kept
func (r *RunNftEnv) TransferTx(from, to common.Address, id common.Hash) error {
	if err := r.ledger.Transfer(from, to, id); err != nil {
		return err
	}
	r.emitter.Emit(types.NewTransferredEvent(from, to, id))
	return nil
}

// SetPriceTx lists the asset, or delists it if price is nil
func (r *RunNftEnv) SetPriceTx(caller common.Address, id common.Hash, price *big.Int) error {
	if price != nil && price.Sign() < 0 {
		return types.ErrNegativeValue
	}
	if err := r.ledger.SetPrice(caller, id, price); err != nil {
		return err
	}
	r.emitter.Emit(types.NewPriceSetEvent(caller, id, price))
	return nil
}

// BuyTx pays the listed price to the owner and takes the asset. The asset is delisted after the sale.
// Everything the transfer needs is checked before the currency moves, so a rejected purchase costs nothing
func (r *RunNftEnv) BuyTx(buyer common.Address, id common.Hash, maxPrice *big.Int) error {
	asset, err := r.ledger.GetAsset(id)
	if err != nil {
		return err
	}
	if !asset.IsForSale() {
		return types.ErrNotForSale
	}
	if maxPrice == nil || maxPrice.Cmp(asset.Price) < 0 {
		return types.ErrPriceTooLow
	}
	seller := asset.Owner
	if _, err := r.ledger.CheckTransfer(seller, buyer, id); err != nil {
		return err
	}

	// collaborator errors are returned as they are
	if err := r.currency.Transfer(buyer, seller, asset.Price); err != nil {
		return err
	}
	if err := r.ledger.Transfer(seller, buyer, id); err != nil {
		return err
	}
	r.emitter.Emit(types.NewTransferredEvent(seller, buyer, id))
	if err := r.ledger.SetPrice(buyer, id, nil); err != nil {
		return err
	}
	r.emitter.Emit(types.NewSoldEvent(buyer, id, asset.Price))
	return nil
}
