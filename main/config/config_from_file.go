package config

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
)

const (
	JsonFileName   = "config.json"
	ConfigGuideUrl = "Please visit https://github.com/LemoFoundationLtd/lemochain-nft#configuration-file for detail"

	// the default chain id of the main net
	DefaultChainID = 1

	// the owned list can't be larger than this, or the owned list record becomes too heavy
	maxOwnedAssetsLimit = 10000
)

var (
	ErrConfig              = errors.New(`file "config.json" format error. ` + ConfigGuideUrl)
	ErrChainIDInConfig     = errors.New("config.json content error: chainID can't be 0")
	ErrMaxOwnedInConfig    = errors.New("config.json content error: maxOwnedAssets must be in [0, 10000]")
	ErrMinBalanceInConfig  = errors.New("config.json content error: minimumBalance can't be negative")
	ErrConfigFileNotExists = errors.New(`file "config.json" is not found. ` + ConfigGuideUrl)
)

type ConfigFromFile struct {
	ChainID        uint16         `json:"chainID"`
	MaxOwnedAssets int            `json:"maxOwnedAssets"`
	MinimumBalance *hexutil.Big10 `json:"minimumBalance,omitempty"`
}

func DefaultConfig() *ConfigFromFile {
	return &ConfigFromFile{
		ChainID:        DefaultChainID,
		MaxOwnedAssets: params.DefaultMaxOwnedAssets,
	}
}

func DelConfigFile(dir string) error {
	return os.Remove(filepath.Join(dir, JsonFileName))
}

// WriteConfigFile overwrites the config file in dir
func WriteConfigFile(dir string, cfg *ConfigFromFile) error {
	result, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	return ioutil.WriteFile(filepath.Join(dir, JsonFileName), result, 0644)
}

func ReadConfigFile(dir string) (*ConfigFromFile, error) {
	file, err := os.Open(filepath.Join(dir, JsonFileName))
	if os.IsNotExist(err) {
		return nil, ErrConfigFileNotExists
	}
	if err != nil {
		return nil, errors.New(err.Error() + "\r\n" + ConfigGuideUrl)
	}
	defer file.Close()
	var config ConfigFromFile
	if err = json.NewDecoder(file).Decode(&config); err != nil {
		return nil, ErrConfig
	}
	return &config, nil
}

// Check fills the default values and applies the config to params. It panics if the content is invalid
func (c *ConfigFromFile) Check() {
	if c.ChainID == 0 {
		panic(ErrChainIDInConfig)
	}
	if c.MaxOwnedAssets < 0 || c.MaxOwnedAssets > maxOwnedAssetsLimit {
		panic(ErrMaxOwnedInConfig)
	}
	if c.MinimumBalance != nil && c.MinimumBalance.ToInt().Sign() < 0 {
		panic(ErrMinBalanceInConfig)
	}

	if c.MaxOwnedAssets == 0 {
		c.MaxOwnedAssets = params.DefaultMaxOwnedAssets
	}
	params.MaxOwnedAssets = c.MaxOwnedAssets
	if c.MinimumBalance != nil {
		params.MinimumBalance = new(big.Int).Set(c.MinimumBalance.ToInt())
	} else {
		params.MinimumBalance = big.NewInt(0)
	}
}
