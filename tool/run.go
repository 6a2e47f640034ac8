package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dajuguan/PEVM/batch"
	"github.com/dajuguan/PEVM/graph"
	"github.com/dajuguan/PEVM/state"
	"github.com/dajuguan/PEVM/vm"
)

var Run = cli.Command{
	Action: run,
	Name:   "run",
	Usage:  "executes a batch sequentially and builds its conflict graph",
	Flags: []cli.Flag{
		&inFlag,
		&storeFlag,
		&dbDirFlag,
		&workersFlag,
		&verboseFlag,
	},
}

var (
	inFlag = cli.StringFlag{
		Name:  "in",
		Usage: "the batch file to analyze",
		Value: "block.json",
	}
	storeFlag = cli.StringFlag{
		Name:  "store",
		Usage: "the store backing to execute against: memory, leveldb, or sqlite",
		Value: "memory",
	}
	dbDirFlag = cli.StringFlag{
		Name:  "db-dir",
		Usage: "the directory for persistent store backings",
		Value: "pevm-db",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "the number of workers building the conflict graph",
		Value: 1,
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "print per-transaction footprints and conflicts",
	}
)

func run(context *cli.Context) error {
	txs, err := batch.ReadFile(context.String(inFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	fmt.Printf("Loaded %d txs. Running serial execution...\n", len(txs))

	store, cleanup, err := openStore(context)
	if err != nil {
		return err
	}

	start := time.Now()
	rwSets, err := vm.ExecuteAll(txs, store)
	execTime := time.Since(start)
	if err != nil {
		return cleanupAfter(fmt.Errorf("execution failed: %w", err), cleanup)
	}
	fmt.Printf("Serial execution took %v\n", execTime)

	start = time.Now()
	var conflictGraph graph.ConflictGraph
	if workers := context.Int(workersFlag.Name); workers > 1 {
		conflictGraph = graph.BuildParallel(rwSets, workers)
	} else {
		conflictGraph = graph.Build(rwSets)
	}
	fmt.Printf("Conflict graph construction took %v\n", time.Since(start))

	edges := 0
	isolated := 0
	for _, neighbors := range conflictGraph {
		edges += len(neighbors)
		if len(neighbors) == 0 {
			isolated++
		}
	}
	fmt.Printf("Graph: %d nodes, %d edges, %d conflict-free txs\n", len(conflictGraph), edges, isolated)

	if context.Bool(verboseFlag.Name) {
		for i, rwSet := range rwSets {
			fmt.Printf("tx %d: reads=%d writes=%d conflicts=%v\n",
				rwSet.ID, len(rwSet.Reads), len(rwSet.Writes), conflictGraph.Neighbors(i))
		}
	}
	return cleanupAfter(nil, cleanup)
}

func openStore(context *cli.Context) (state.Store, func() error, error) {
	noCleanup := func() error { return nil }
	switch backing := context.String(storeFlag.Name); backing {
	case "memory":
		return state.NewMemoryStore(), noCleanup, nil
	case "leveldb":
		store, err := state.NewLevelDbStore(filepath.Join(context.String(dbDirFlag.Name), "leveldb"))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "sqlite":
		dir := context.String(dbDirFlag.Name)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, nil, err
		}
		store, err := state.NewSqliteStore(filepath.Join(dir, "state.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backing: %s", backing)
	}
}

func cleanupAfter(err error, cleanup func() error) error {
	if closeErr := cleanup(); err == nil {
		return closeErr
	}
	return err
}
