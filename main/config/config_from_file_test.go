package config

import (
	"io/ioutil"
	"math/big"
	"os"
	"testing"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common/hexutil"
	"github.com/stretchr/testify/assert"
)

func getTestConfig() *ConfigFromFile {
	return &ConfigFromFile{
		ChainID:        100,
		MaxOwnedAssets: 50,
		MinimumBalance: (*hexutil.Big10)(big.NewInt(1000)),
	}
}

func resetParams() {
	params.MaxOwnedAssets = params.DefaultMaxOwnedAssets
	params.MinimumBalance = big.NewInt(0)
}

func TestReadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "nft-config")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	_, err = ReadConfigFile(dir)
	assert.Equal(t, ErrConfigFileNotExists, err)

	cfg := getTestConfig()
	assert.NoError(t, WriteConfigFile(dir, cfg))
	configFromFile, err := ReadConfigFile(dir)
	assert.NoError(t, err)
	assert.Equal(t, cfg.ChainID, configFromFile.ChainID)
	assert.Equal(t, cfg.MaxOwnedAssets, configFromFile.MaxOwnedAssets)
	assert.Equal(t, "1000", configFromFile.MinimumBalance.String())

	// overwrite
	assert.NoError(t, WriteConfigFile(dir, DefaultConfig()))
	configFromFile, err = ReadConfigFile(dir)
	assert.NoError(t, err)
	assert.Equal(t, uint16(DefaultChainID), configFromFile.ChainID)
	assert.Nil(t, configFromFile.MinimumBalance)

	assert.NoError(t, ioutil.WriteFile(dir+"/"+JsonFileName, []byte("{chainID"), 0644))
	_, err = ReadConfigFile(dir)
	assert.Equal(t, ErrConfig, err)

	assert.NoError(t, DelConfigFile(dir))
	_, err = ReadConfigFile(dir)
	assert.Equal(t, ErrConfigFileNotExists, err)
}

func TestConfigFromFile_Check_Error(t *testing.T) {
	defer resetParams()

	cfg := getTestConfig()
	cfg.ChainID = 0
	assert.PanicsWithValue(t, ErrChainIDInConfig, func() {
		cfg.Check()
	})

	cfg = getTestConfig()
	cfg.MaxOwnedAssets = -1
	assert.PanicsWithValue(t, ErrMaxOwnedInConfig, func() {
		cfg.Check()
	})

	cfg = getTestConfig()
	cfg.MaxOwnedAssets = 10001
	assert.PanicsWithValue(t, ErrMaxOwnedInConfig, func() {
		cfg.Check()
	})

	cfg = getTestConfig()
	cfg.MinimumBalance = (*hexutil.Big10)(big.NewInt(-1))
	assert.PanicsWithValue(t, ErrMinBalanceInConfig, func() {
		cfg.Check()
	})
}

func TestConfigFromFile_Check_DefaultValue(t *testing.T) {
	defer resetParams()

	cfg := getTestConfig()
	cfg.Check()
	assert.Equal(t, 50, params.MaxOwnedAssets)
	assert.Equal(t, big.NewInt(1000), params.MinimumBalance)

	cfg = getTestConfig()
	cfg.MaxOwnedAssets = 0
	cfg.MinimumBalance = nil
	cfg.Check()
	assert.Equal(t, params.DefaultMaxOwnedAssets, cfg.MaxOwnedAssets)
	assert.Equal(t, params.DefaultMaxOwnedAssets, params.MaxOwnedAssets)
	assert.Equal(t, big.NewInt(0), params.MinimumBalance)
}
