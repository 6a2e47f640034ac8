package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dajuguan/PEVM/batch"
	"github.com/dajuguan/PEVM/workload"
)

var Generate = cli.Command{
	Action: generate,
	Name:   "generate",
	Usage:  "generates a synthetic transaction batch file",
	Flags: []cli.Flag{
		&outFlag,
		&numTxsFlag,
		&keySpaceFlag,
		&conflictRatioFlag,
		&coldRatioFlag,
		&seedFlag,
	},
}

var (
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "the batch file to create (a .snappy suffix enables compression)",
		Value: "block.json",
	}
	numTxsFlag = cli.IntFlag{
		Name:  "n-tx",
		Usage: "the number of transactions to generate",
		Value: 2,
	}
	keySpaceFlag = cli.IntFlag{
		Name:  "key-space",
		Usage: "the number of distinct storage keys",
		Value: 1000,
	}
	conflictRatioFlag = cli.Float64Flag{
		Name:  "conflict-ratio",
		Usage: "the share of the key space treated as hot keys",
		Value: 0.2,
	}
	coldRatioFlag = cli.Float64Flag{
		Name:  "cold-ratio",
		Usage: "the probability of touching a uniformly random key",
		Value: 0.1,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "the random seed making the batch reproducible",
		Value: 42,
	}
)

func generate(context *cli.Context) error {
	txs := workload.Generate(workload.Config{
		NumTxs:        context.Int(numTxsFlag.Name),
		KeySpace:      context.Int(keySpaceFlag.Name),
		ConflictRatio: context.Float64(conflictRatioFlag.Name),
		ColdRatio:     context.Float64(coldRatioFlag.Name),
		Seed:          context.Int64(seedFlag.Name),
	})

	out := context.String(outFlag.Name)
	if err := batch.WriteFile(out, txs); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	fmt.Printf("Generated %d txs -> %s\n", len(txs), out)
	return nil
}
