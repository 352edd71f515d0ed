package main

import (
	"fmt"
	"io"

	"github.com/LemoFoundationLtd/lemochain-nft/main/wallet"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

var (
	accountCommand = cli.Command{
		Name:     "account",
		Usage:    "Manage accounts",
		Category: "ACCOUNT COMMANDS",
		Subcommands: []cli.Command{
			{
				Action: newAccount,
				Name:   "new",
				Usage:  "Generate a new private key and print its addresses",
				Description: `
The private key is only printed once. Keep it safe, it is required to sign transactions.`,
			},
		},
	}
)

func newAccount(ctx *cli.Context) error {
	w, err := wallet.NewWallet()
	if err != nil {
		return err
	}
	printWallet(color.Output, w)
	return nil
}

func printWallet(out io.Writer, w *wallet.Wallet) {
	fmt.Fprintf(out, "Address:     %s\n", color.GreenString(w.GenerateAddress()))
	fmt.Fprintf(out, "Hex address: %s\n", w.Address.Hex())
	fmt.Fprintf(out, "Private key: %s\n", color.YellowString(w.PrivateKeyHex()))
}
