package node

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LemoFoundationLtd/lemochain-nft/chain/params"
	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/flag"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/main/wallet"
	"gopkg.in/urfave/cli.v1"
)

func NewApp(usage string) *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.Version
	app.Usage = usage
	return app
}

var (
	DataDirFlag = cli.StringFlag{
		Name:  common.DataDir,
		Usage: "Data directory for the database and config.json",
		Value: DefaultDataDir(),
	}
	LogLevelFlag = cli.StringFlag{
		Name:  common.LogLevel,
		Usage: "output log level. 1:crit 2:error 3:warn 4:info 5:debug",
		Value: "4",
	}
	LogToFileFlag = cli.BoolFlag{
		Name:  common.LogToFile,
		Usage: "write the logs into the log file in json format too",
	}
	ShowCodeFlag = cli.BoolFlag{
		Name:  common.ShowCode,
		Usage: "show the code line in logs",
	}

	KeyFlag = cli.StringFlag{
		Name:  common.KeyHex,
		Usage: "hex private key of the account which signs the transaction",
	}
	ToFlag = cli.StringFlag{
		Name:  common.Recipient,
		Usage: "recipient address, Lemo address or hex address",
	}
	AccountFlag = cli.StringFlag{
		Name:  common.Account,
		Usage: "account address, Lemo address or hex address",
	}
	AssetFlag = cli.StringFlag{
		Name:  common.AssetId,
		Usage: "hex asset id",
	}
	PriceFlag = cli.StringFlag{
		Name:  common.Price,
		Usage: `price in LEMO like "1.5". An empty price delists the asset`,
	}
)

var GlobalFlags = []cli.Flag{
	DataDirFlag,
	LogLevelFlag,
	LogToFileFlag,
	ShowCodeFlag,
}

// SetupLog applies the log flags
func SetupLog(flags flag.CmdFlags) error {
	lv, err := log.ParseLevel(flags.String(LogLevelFlag.Name))
	if err != nil {
		return err
	}
	toFile := flags.Bool(LogToFileFlag.Name)
	if toFile {
		log.SetLogDir(flags.String(DataDirFlag.Name))
	}
	log.Setup(lv, toFile, flags.Bool(ShowCodeFlag.Name))
	return nil
}

// LoadKey restores the signer's wallet from the key flag
func LoadKey(flags flag.CmdFlags) (*wallet.Wallet, error) {
	keyHex := flags.String(KeyFlag.Name)
	if keyHex == "" {
		return nil, fmt.Errorf("%v: --%s", flag.ErrFlagMissing, KeyFlag.Name)
	}
	w, err := wallet.LoadWallet(keyHex)
	if err != nil {
		return nil, fmt.Errorf("option %q: %v", KeyFlag.Name, err)
	}
	return w, nil
}

// ParseAddressFlag parses an address flag written as Lemo address or hex address
func ParseAddressFlag(flags flag.CmdFlags, f cli.Flag) (common.Address, error) {
	value := flags.String(f.GetName())
	if value == "" {
		return common.Address{}, fmt.Errorf("%v: --%s", flag.ErrFlagMissing, f.GetName())
	}
	addr, err := wallet.ParseAddress(value)
	if err != nil {
		return common.Address{}, fmt.Errorf("option %q: %v", f.GetName(), err)
	}
	return addr, nil
}
