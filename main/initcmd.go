package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/LemoFoundationLtd/lemochain-nft/chain"
	"github.com/LemoFoundationLtd/lemochain-nft/chain/types"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/main/config"
	"github.com/LemoFoundationLtd/lemochain-nft/store"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

var (
	initCommand = cli.Command{
		Action:    initGenesis,
		Name:      "init",
		Usage:     "Bootstrap and initialize a new genesis block",
		ArgsUsage: "[genesisPath]",
		Category:  "BLOCKCHAIN COMMANDS",
		Description: `
The init command writes config.json and the genesis block into the data directory.

It takes an optional genesis file as argument. The default genesis is used if it is omitted.`,
	}
)

var (
	ErrFileReadFailed     = errors.New("open genesis config file failed")
	ErrInvalidGenesisFile = errors.New("invalid genesis file")
)

func initGenesis(ctx *cli.Context) error {
	block, err := setupGenesisBlock(ctx.Args().First(), dataDir(ctx))
	if err != nil {
		return err
	}
	color.Green("init genesis succeed. hash: %s", block.Hash().Hex())
	return nil
}

func setupGenesisBlock(genesisFile, datadir string) (*types.Block, error) {
	var genesis *chain.Genesis
	if genesisFile != "" {
		var err error
		if genesis, err = unmarshal(genesisFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.ReadConfigFile(datadir)
	if err == config.ErrConfigFileNotExists {
		cfg = config.DefaultConfig()
		if err = config.WriteConfigFile(datadir, cfg); err != nil {
			return nil, err
		}
		log.Info("Write default config file", "dir", datadir)
	} else if err != nil {
		return nil, err
	}
	cfg.Check()

	db, err := store.NewChainDatabase(datadir)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return chain.SetupGenesisBlock(db, genesis)
}

func unmarshal(genesisFile string) (*chain.Genesis, error) {
	file, err := os.Open(genesisFile)
	if err != nil {
		log.Errorf("%v", err)
		return nil, ErrFileReadFailed
	}
	defer file.Close()

	genesis := new(chain.Genesis)
	if err := json.NewDecoder(file).Decode(genesis); err != nil {
		log.Errorf("%v", err)
		return nil, ErrInvalidGenesisFile
	}
	return genesis, nil
}
