package main

import (
	"bufio"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ledger/blockchain"
	"ledger/config"
	"ledger/db"
	"ledger/keys"
	"ledger/logs"
	"ledger/types"
)

// Single-node ledger runner: transactions come in on stdin (one JSON-able
// line per transaction), blocks are committed on a timer, and every
// committed block is persisted to Badger and to one JSON file per block.
func main() {
	cfg, err := config.LoadFromFile(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		logs.Warn("[main] config: %v, using defaults", err)
	}

	kp, err := keys.LoadOrCreate(cfg.Keys.KeyFile)
	if err != nil {
		logs.Error("[main] key material: %v", err)
		os.Exit(1)
	}

	manager, err := db.NewManager(cfg.Database.Path, cfg)
	if err != nil {
		logs.Error("[main] open db: %v", err)
		os.Exit(1)
	}
	defer manager.Close()

	fileStore, err := db.NewFileStore(filepath.Clean(cfg.Database.BlockFileDir))
	if err != nil {
		logs.Error("[main] open file store: %v", err)
		os.Exit(1)
	}

	bc, err := blockchain.New(kp, cfg, manager, fileStore)
	if err != nil {
		logs.Error("[main] init ledger: %v", err)
		os.Exit(1)
	}
	bc.Start()
	defer bc.Stop()

	// commit loop: the schedule lives here, not in the ledger core
	ticker := time.NewTicker(cfg.Ledger.CommitInterval)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if bc.PendingCount() == 0 {
					continue
				}
				if _, err := bc.CommitPendingBlock(); err != nil {
					logs.Error("[main] commit failed: %v", err)
				}
			case <-done:
				return
			}
		}
	}()

	// stdin feed: each line becomes one transaction payload
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			_, err := bc.SubmitTransaction(line, func(t types.Transaction) {
				logs.Info("[main] transaction %s settled", t.ShortID())
			})
			if err != nil {
				logs.Error("[main] submit failed: %v", err)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	close(done)

	// final commit so nothing pending is lost on shutdown
	if bc.PendingCount() > 0 {
		if _, err := bc.CommitPendingBlock(); err != nil {
			logs.Error("[main] final commit failed: %v", err)
		}
	}
	logs.Info("[main] shutting down: %s", bc)
}
