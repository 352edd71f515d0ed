package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
)

type EventType string

const (
	EventCreated     EventType = "Created"
	EventTransferred EventType = "Transferred"
	EventPriceSet    EventType = "PriceSet"
	EventSold        EventType = "Sold"
)

// Event records the outcome of a successful ledger operation. Only the fields of its type are set
type Event struct {
	Type    EventType
	Owner   *common.Address // Created, PriceSet
	From    *common.Address // Transferred
	To      *common.Address // Transferred
	Buyer   *common.Address // Sold
	AssetId common.Hash
	Price   *big.Int // PriceSet (nil means delisted), Sold
	TxHash  common.Hash
}

type eventMarshaling struct {
	Type    EventType       `json:"type"`
	Owner   *common.Address `json:"owner,omitempty"`
	From    *common.Address `json:"from,omitempty"`
	To      *common.Address `json:"to,omitempty"`
	Buyer   *common.Address `json:"buyer,omitempty"`
	AssetId common.Hash     `json:"assetId"`
	Price   *hexutil.Big10  `json:"price"`
	TxHash  common.Hash     `json:"transactionHash"`
}

func addrPtr(addr common.Address) *common.Address {
	return &addr
}

func NewCreatedEvent(owner common.Address, id common.Hash) *Event {
	return &Event{Type: EventCreated, Owner: addrPtr(owner), AssetId: id}
}

func NewTransferredEvent(from, to common.Address, id common.Hash) *Event {
	return &Event{Type: EventTransferred, From: addrPtr(from), To: addrPtr(to), AssetId: id}
}

func NewPriceSetEvent(owner common.Address, id common.Hash, price *big.Int) *Event {
	return &Event{Type: EventPriceSet, Owner: addrPtr(owner), AssetId: id, Price: CopyPrice(price)}
}

func NewSoldEvent(buyer common.Address, id common.Hash, price *big.Int) *Event {
	return &Event{Type: EventSold, Buyer: addrPtr(buyer), AssetId: id, Price: CopyPrice(price)}
}

func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(&eventMarshaling{
		Type:    e.Type,
		Owner:   e.Owner,
		From:    e.From,
		To:      e.To,
		Buyer:   e.Buyer,
		AssetId: e.AssetId,
		Price:   (*hexutil.Big10)(e.Price),
		TxHash:  e.TxHash,
	})
}

func (e *Event) UnmarshalJSON(input []byte) error {
	var dec eventMarshaling
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*e = Event{
		Type:    dec.Type,
		Owner:   dec.Owner,
		From:    dec.From,
		To:      dec.To,
		Buyer:   dec.Buyer,
		AssetId: dec.AssetId,
		TxHash:  dec.TxHash,
	}
	if dec.Price != nil {
		e.Price = new(big.Int).Set(dec.Price.ToInt())
	}
	return nil
}

// LogContext returns the key/value pairs used to print the event in log
func (e *Event) LogContext() []interface{} {
	ctx := []interface{}{"assetId", e.AssetId.Prefix()}
	if e.Owner != nil {
		ctx = append(ctx, "owner", e.Owner.Hex())
	}
	if e.From != nil {
		ctx = append(ctx, "from", e.From.Hex())
	}
	if e.To != nil {
		ctx = append(ctx, "to", e.To.Hex())
	}
	if e.Buyer != nil {
		ctx = append(ctx, "buyer", e.Buyer.Hex())
	}
	if e.Price != nil {
		ctx = append(ctx, "price", e.Price.String())
	}
	return ctx
}

func (e *Event) String() string {
	set := []string{fmt.Sprintf("Type: %s", e.Type)}
	ctx := e.LogContext()
	for i := 0; i+1 < len(ctx); i += 2 {
		set = append(set, fmt.Sprintf("%s: %v", ctx[i], ctx[i+1]))
	}
	return fmt.Sprintf("{%s}", strings.Join(set, ", "))
}
