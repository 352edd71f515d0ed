package main

import (
	"os"
	"runtime"
	"sort"

	"github.com/LemoFoundationLtd/lemochain-nft/common/flag"
	"github.com/LemoFoundationLtd/lemochain-nft/common/log"
	"github.com/LemoFoundationLtd/lemochain-nft/main/node"
	"github.com/LemoFoundationLtd/lemochain-nft/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"gopkg.in/urfave/cli.v1"
)

var (
	app = node.NewApp("the lemochain NFT ledger command line interface")

	metricsFlag = cli.BoolFlag{
		Name:  metrics.MetricsEnabledFlag,
		Usage: "Enable metrics collection and print them at exit",
	}
)

func init() {
	app.HideVersion = true
	app.Copyright = "Copyright 2017-2020 The lemochain-nft Authors"
	app.Commands = []cli.Command{
		initCommand,
		accountCommand,
		mintCommand,
		transferCommand,
		priceCommand,
		buyCommand,
		assetCommand,
		ownedCommand,
		balanceCommand,
		verifyCommand,
		dumpCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	app.Flags = append(app.Flags, node.GlobalFlags...)
	app.Flags = append(app.Flags, metricsFlag)

	app.Before = func(ctx *cli.Context) error {
		runtime.GOMAXPROCS(runtime.NumCPU())
		return node.SetupLog(flag.NewCmdFlags(ctx, app.Flags))
	}

	app.After = func(ctx *cli.Context) error {
		if metrics.Enabled {
			metrics.LogMetrics(gometrics.DefaultRegistry)
			for _, module := range metrics.Modules {
				log.Debug("Module metrics", "module", module, "count", len(metrics.GetModuleMetrics(gometrics.DefaultRegistry, module)))
			}
			metrics.CheckAlarms(gometrics.DefaultRegistry, metrics.AlarmRuleTable)
		}
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		node.Fatalf("%v", err)
	}
}
