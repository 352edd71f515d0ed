package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/nft"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/flag"
	"github.com/LemoFoundationLtd/lemochain-nft/main/node"
	"github.com/LemoFoundationLtd/lemochain-nft/main/wallet"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

var (
	assetCommand = cli.Command{
		Action:   showAsset,
		Name:     "asset",
		Usage:    "Print an asset",
		Flags:    []cli.Flag{node.AssetFlag},
		Category: "QUERY COMMANDS",
	}
	ownedCommand = cli.Command{
		Action:   showOwned,
		Name:     "owned",
		Usage:    "Print the assets owned by an account",
		Flags:    []cli.Flag{node.AccountFlag},
		Category: "QUERY COMMANDS",
	}
	balanceCommand = cli.Command{
		Action:   showBalance,
		Name:     "balance",
		Usage:    "Print the balance of an account",
		Flags:    []cli.Flag{node.AccountFlag},
		Category: "QUERY COMMANDS",
	}
	verifyCommand = cli.Command{
		Action:   verifyLedger,
		Name:     "verify",
		Usage:    "Check the consistency of the saved asset ledger",
		Category: "QUERY COMMANDS",
	}
	dumpCommand = cli.Command{
		Action:   dumpChain,
		Name:     "dump",
		Usage:    "Dump the current block and its receipts, or an asset with --asset",
		Flags:    []cli.Flag{node.AssetFlag},
		Category: "QUERY COMMANDS",
	}
)

func withDB(datadir string, fn func(db *store.ChainDatabase) error) error {
	_, db, err := openDB(datadir)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func loadAsset(db *store.ChainDatabase, id common.Hash) (*types.Asset, error) {
	asset, err := db.GetAsset(id)
	if err == store.ErrNotExist {
		return nil, types.ErrAssetNotFound
	}
	return asset, err
}

func printAsset(out io.Writer, asset *types.Asset) {
	fmt.Fprintf(out, "Id:    %s\n", asset.Id.Hex())
	fmt.Fprintf(out, "Owner: %s (%s)\n", wallet.ToLemoAddress(asset.Owner), asset.Owner.Hex())
	if asset.IsForSale() {
		fmt.Fprintf(out, "Price: %s LEMO\n", color.GreenString(common.FormatLemo(asset.Price)))
	} else {
		fmt.Fprintf(out, "Price: %s\n", color.YellowString("not for sale"))
	}
}

func printOwned(out io.Writer, owner common.Address, ids []common.Hash) {
	fmt.Fprintf(out, "%s owns %d assets\n", wallet.ToLemoAddress(owner), len(ids))
	for _, id := range ids {
		fmt.Fprintf(out, "  %s\n", id.Hex())
	}
}

func printBalance(out io.Writer, owner common.Address, balance *big.Int) {
	fmt.Fprintf(out, "%s: %s LEMO\n", wallet.ToLemoAddress(owner), color.GreenString(common.FormatLemo(balance)))
}

func showAsset(ctx *cli.Context) error {
	id, err := flag.NewCmdFlags(ctx, ctx.Command.Flags).Hash(node.AssetFlag.Name)
	if err != nil {
		return err
	}
	return withDB(dataDir(ctx), func(db *store.ChainDatabase) error {
		asset, err := loadAsset(db, id)
		if err != nil {
			return err
		}
		printAsset(color.Output, asset)
		return nil
	})
}

func showOwned(ctx *cli.Context) error {
	owner, err := node.ParseAddressFlag(flag.NewCmdFlags(ctx, ctx.Command.Flags), node.AccountFlag)
	if err != nil {
		return err
	}
	return withDB(dataDir(ctx), func(db *store.ChainDatabase) error {
		ids, err := db.GetOwned(owner)
		if err != nil {
			return err
		}
		printOwned(color.Output, owner, ids)
		return nil
	})
}

func showBalance(ctx *cli.Context) error {
	owner, err := node.ParseAddressFlag(flag.NewCmdFlags(ctx, ctx.Command.Flags), node.AccountFlag)
	if err != nil {
		return err
	}
	return withDB(dataDir(ctx), func(db *store.ChainDatabase) error {
		balance, err := db.GetBalance(owner)
		if err != nil {
			return err
		}
		printBalance(color.Output, owner, balance)
		return nil
	})
}

func verifyLedger(ctx *cli.Context) error {
	return withDB(dataDir(ctx), func(db *store.ChainDatabase) error {
		if err := nft.VerifyLedger(db, params.MaxOwnedAssets); err != nil {
			color.Red("%v", err)
			return err
		}
		count, err := db.GetAssetCount()
		if err != nil {
			return err
		}
		color.Green("The ledger is consistent. %d assets", count)
		return nil
	})
}

// dumpState writes the asset, or the current block with its receipts if id is empty
func dumpState(out io.Writer, db *store.ChainDatabase, id common.Hash) error {
	config := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	if id != (common.Hash{}) {
		asset, err := loadAsset(db, id)
		if err != nil {
			return err
		}
		config.Fdump(out, asset)
		return nil
	}
	block, err := db.GetCurrentBlock()
	if err != nil {
		return err
	}
	receipts, err := db.GetReceipts(block.Hash())
	if err != nil && err != store.ErrNotExist {
		return err
	}
	config.Fdump(out, block, receipts)
	return nil
}

func dumpChain(ctx *cli.Context) error {
	flags := flag.NewCmdFlags(ctx, ctx.Command.Flags)
	var id common.Hash
	if flags.IsSet(node.AssetFlag.Name) {
		var err error
		if id, err = flags.Hash(node.AssetFlag.Name); err != nil {
			return err
		}
	}
	return withDB(dataDir(ctx), func(db *store.ChainDatabase) error {
		return dumpState(color.Output, db, id)
	})
}
