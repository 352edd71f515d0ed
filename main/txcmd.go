package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common/flag"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/LemoFoundationLtd/lemochain-nft/main/node"
	"github.com/LemoFoundationLtd/lemochain-nft/main/wallet"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

// ErrTxFailed is returned after the failed receipt is printed
var ErrTxFailed = errors.New("transaction failed")

var (
	mintFlags     = []cli.Flag{node.KeyFlag}
	transferFlags = []cli.Flag{node.KeyFlag, node.ToFlag, node.AssetFlag}
	priceFlags    = []cli.Flag{node.KeyFlag, node.AssetFlag, node.PriceFlag}
	buyFlags      = []cli.Flag{node.KeyFlag, node.AssetFlag, node.PriceFlag}

	mintCommand = cli.Command{
		Action:   mintAsset,
		Name:     "mint",
		Usage:    "Create a new asset owned by the signer",
		Flags:    mintFlags,
		Category: "ASSET COMMANDS",
	}
	transferCommand = cli.Command{
		Action:   transferAsset,
		Name:     "transfer",
		Usage:    "Give an asset to another account",
		Flags:    transferFlags,
		Category: "ASSET COMMANDS",
	}
	priceCommand = cli.Command{
		Action:   setAssetPrice,
		Name:     "price",
		Usage:    "List an asset for sale, or delist it without --price",
		Flags:    priceFlags,
		Category: "ASSET COMMANDS",
	}
	buyCommand = cli.Command{
		Action:   buyAsset,
		Name:     "buy",
		Usage:    "Buy a listed asset. --price is the most the signer is willing to pay",
		Flags:    buyFlags,
		Category: "ASSET COMMANDS",
	}
)

type txBuilder func(chainID uint16) *types.Transaction

// sendTx signs the transaction and applies it in a new block
func sendTx(datadir string, signer *wallet.Wallet, build txBuilder) (*types.Block, *types.Receipt, error) {
	db, bc, err := openChain(datadir)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	chainID := bc.ChainID()
	tx, err := types.SignTx(build(chainID), types.MakeSigner(chainID), signer.PrivateKey)
	if err != nil {
		return nil, nil, err
	}
	block, receipts, err := bc.ApplyTxs(types.Transactions{tx})
	if err != nil {
		return nil, nil, err
	}
	return block, receipts[0], nil
}

func printReceipt(out io.Writer, block *types.Block, receipt *types.Receipt) {
	if receipt.Success {
		color.New(color.FgGreen).Fprintf(out, "Transaction %s succeeded in block %d\n", receipt.TxHash.Hex(), block.Height())
	} else {
		color.New(color.FgRed).Fprintf(out, "Transaction %s failed in block %d: %s\n", receipt.TxHash.Hex(), block.Height(), receipt.Error)
	}
	for _, event := range receipt.Events {
		fmt.Fprintf(out, "  %s\n", event)
	}
}

func runTxCommand(ctx *cli.Context, cmdFlags []cli.Flag, build func(flags flag.CmdFlags) (txBuilder, error)) error {
	flags := flag.NewCmdFlags(ctx, cmdFlags)
	signer, err := node.LoadKey(flags)
	if err != nil {
		return err
	}
	builder, err := build(flags)
	if err != nil {
		return err
	}
	block, receipt, err := sendTx(dataDir(ctx), signer, builder)
	if err != nil {
		return err
	}
	printReceipt(color.Output, block, receipt)
	if !receipt.Success {
		return ErrTxFailed
	}
	return nil
}

func mintAsset(ctx *cli.Context) error {
	return runTxCommand(ctx, mintFlags, func(flags flag.CmdFlags) (txBuilder, error) {
		return types.NewCreateAssetTx, nil
	})
}

func transferAsset(ctx *cli.Context) error {
	return runTxCommand(ctx, transferFlags, func(flags flag.CmdFlags) (txBuilder, error) {
		to, err := node.ParseAddressFlag(flags, node.ToFlag)
		if err != nil {
			return nil, err
		}
		id, err := flags.Hash(node.AssetFlag.Name)
		if err != nil {
			return nil, err
		}
		return func(chainID uint16) *types.Transaction {
			return types.NewTransferAssetTx(chainID, to, id)
		}, nil
	})
}

func setAssetPrice(ctx *cli.Context) error {
	return runTxCommand(ctx, priceFlags, func(flags flag.CmdFlags) (txBuilder, error) {
		id, err := flags.Hash(node.AssetFlag.Name)
		if err != nil {
			return nil, err
		}
		price, err := flags.Lemo(node.PriceFlag.Name)
		if err != nil {
			return nil, err
		}
		return func(chainID uint16) *types.Transaction {
			return types.NewSetAssetPriceTx(chainID, id, (*hexutil.Big10)(price))
		}, nil
	})
}

func buyAsset(ctx *cli.Context) error {
	return runTxCommand(ctx, buyFlags, func(flags flag.CmdFlags) (txBuilder, error) {
		id, err := flags.Hash(node.AssetFlag.Name)
		if err != nil {
			return nil, err
		}
		maxPrice, err := flags.Lemo(node.PriceFlag.Name)
		if err != nil {
			return nil, err
		}
		if maxPrice == nil {
			return nil, fmt.Errorf("%v: --%s", flag.ErrFlagMissing, node.PriceFlag.Name)
		}
		return func(chainID uint16) *types.Transaction {
			return types.NewBuyAssetTx(chainID, id, (*hexutil.Big10)(maxPrice))
		}, nil
	})
}
