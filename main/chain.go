package main

import (
	"github.com/LemoFoundationLtd/lemochain-nft/chain"
	"github.com/LemoFoundationLtd/lemochain-nft/main/config"
	"github.com/LemoFoundationLtd/lemochain-nft/main/node"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"gopkg.in/urfave/cli.v1"
)

func dataDir(ctx *cli.Context) string {
	return ctx.GlobalString(node.DataDirFlag.Name)
}

// openDB applies config.json in datadir and opens the database
func openDB(datadir string) (*config.ConfigFromFile, *store.ChainDatabase, error) {
	cfg, err := config.ReadConfigFile(datadir)
	if err != nil {
		return nil, nil, err
	}
	cfg.Check()
	db, err := store.NewChainDatabase(datadir)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func openChain(datadir string) (*store.ChainDatabase, *chain.BlockChain, error) {
	cfg, db, err := openDB(datadir)
	if err != nil {
		return nil, nil, err
	}
	bc, err := chain.NewBlockChain(cfg.ChainID, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, bc, nil
}
