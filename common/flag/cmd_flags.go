package flag

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"gopkg.in/urfave/cli.v1"
)

var ErrFlagMissing = errors.New("required flag is missing")

type flagInfo struct {
	IsSet bool
	Value string
}

// CmdFlags is a snapshot of the global and local flag values of a command
type CmdFlags map[string]flagInfo

func NewCmdFlags(ctx *cli.Context, totalFlags []cli.Flag) CmdFlags {
	flags := make(CmdFlags, len(totalFlags))
	for _, f := range totalFlags {
		if ctx.GlobalIsSet(f.GetName()) {
			flags[f.GetName()] = flagInfo{true, ctx.GlobalString(f.GetName())}
		} else if ctx.IsSet(f.GetName()) {
			flags[f.GetName()] = flagInfo{true, ctx.String(f.GetName())}
		} else {
			// default value
			flags[f.GetName()] = flagInfo{false, ctx.String(f.GetName())}
		}
	}
	return flags
}

func (c CmdFlags) IsSet(name string) bool {
	info, ok := c[name]
	return ok && info.IsSet
}

// Bool returns false if not found
func (c CmdFlags) Bool(name string) bool {
	info, ok := c[name]
	if ok {
		if parsed, err := strconv.ParseBool(info.Value); err == nil {
			return parsed
		}
	}
	return false
}

// Uint64 returns 0 if not found
func (c CmdFlags) Uint64(name string) uint64 {
	info, ok := c[name]
	if ok {
		if parsed, err := strconv.ParseUint(info.Value, 0, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// String returns "" if not found
func (c CmdFlags) String(name string) string {
	info, ok := c[name]
	if ok {
		return info.Value
	}
	return ""
}

// Address parses a hex address flag
func (c CmdFlags) Address(name string) (common.Address, error) {
	value := c.String(name)
	if value == "" {
		return common.Address{}, fmt.Errorf("%v: --%s", ErrFlagMissing, name)
	}
	return common.ParseAddress(value)
}

// Hash parses a hex hash flag
func (c CmdFlags) Hash(name string) (common.Hash, error) {
	value := c.String(name)
	if value == "" {
		return common.Hash{}, fmt.Errorf("%v: --%s", ErrFlagMissing, name)
	}
	return common.ParseHash(value)
}

// Lemo parses an amount flag written in LEMO, like "1.5". It returns nil if the flag is empty
func (c CmdFlags) Lemo(name string) (*big.Int, error) {
	value := c.String(name)
	if value == "" {
		return nil, nil
	}
	return common.ParseLemo(value)
}

// CheckExclusive verifies that only a single instance of the provided flags was set by the user.
func (c CmdFlags) CheckExclusive(args ...cli.Flag) error {
	if len(args) <= 1 {
		return nil
	}

	set := make([]string, 0, 1)
	for i := 0; i < len(args); i++ {
		name := args[i].GetName()
		if c.IsSet(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("flags %v can't be used at the same time", strings.Join(set, ", "))
	}
	return nil
}
