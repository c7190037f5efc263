package db

import (
	"fmt"
	"os"
	"sync"
	"time"

	"ledger/config"
	"ledger/logs"

	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/badger/v2/options"
	lru "github.com/hashicorp/golang-lru"
)

// WriteTask is one queued key/value write.
type WriteTask struct {
	Key   string
	Value []byte
}

type flushRequest struct {
	done chan error
}

// Manager wraps BadgerDB behind a bounded write queue: producers enqueue
// sets, a single flush goroutine batches them into transactions by size or
// interval. Reads go straight to Badger (through an lru block cache at the
// block layer), so a read only sees a queued write after it is flushed.
type Manager struct {
	Db *badger.DB
	mu sync.RWMutex

	writeQueueChan chan WriteTask
	forceFlushChan chan flushRequest
	stopChan       chan struct{}
	wg             sync.WaitGroup

	maxBatchSize  int
	flushInterval time.Duration

	blockCache *lru.Cache
	cfg        *config.Config
}

// NewManager opens Badger at path and starts the write queue.
func NewManager(path string, cfg *config.Config) (*Manager, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	// badger v2 does not create parent dirs on its own
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	opts.ValueLogFileSize = cfg.Database.ValueLogFileSize
	// FileIO keeps mmap usage down for a small single-writer store
	opts.TableLoadingMode = options.FileIO
	opts.ValueLogLoadingMode = options.FileIO

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	blockCache, err := lru.New(cfg.Database.BlockCacheSize)
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}

	manager := &Manager{
		Db:             bdb,
		writeQueueChan: make(chan WriteTask, cfg.Database.WriteQueueSize),
		forceFlushChan: make(chan flushRequest, 1),
		stopChan:       make(chan struct{}),
		maxBatchSize:   cfg.Database.MaxBatchSize,
		flushInterval:  cfg.Database.FlushInterval,
		blockCache:     blockCache,
		cfg:            cfg,
	}
	manager.wg.Add(1)
	go manager.runWriteQueue()
	return manager, nil
}

// EnqueueSet queues a write; it blocks only when the queue is full.
func (manager *Manager) EnqueueSet(key string, value []byte) {
	manager.writeQueueChan <- WriteTask{Key: key, Value: value}
}

func (manager *Manager) runWriteQueue() {
	defer manager.wg.Done()

	batch := make([]WriteTask, 0, manager.maxBatchSize)
	ticker := time.NewTicker(manager.flushInterval)
	defer ticker.Stop()

	flushCurrentBatch := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := manager.flushBatch(batch)
		batch = batch[:0]
		return err
	}

	for {
		select {
		case <-manager.stopChan:
			// drain what is queued, flush the last batch, then exit
			batch = manager.drainWriteQueue(batch)
			if err := flushCurrentBatch(); err != nil {
				logs.Error("[db] final flush failed: %v", err)
			}
			return

		case task := <-manager.writeQueueChan:
			batch = append(batch, task)
			if len(batch) >= manager.maxBatchSize {
				if err := flushCurrentBatch(); err != nil {
					logs.Error("[db] flush by size failed: %v", err)
				}
			}

		case <-ticker.C:
			batch = manager.drainWriteQueue(batch)
			if err := flushCurrentBatch(); err != nil {
				logs.Error("[db] flush by ticker failed: %v", err)
			}

		case req := <-manager.forceFlushChan:
			batch = manager.drainWriteQueue(batch)
			err := flushCurrentBatch()
			req.done <- err
			close(req.done)
		}
	}
}

func (manager *Manager) drainWriteQueue(batch []WriteTask) []WriteTask {
	for {
		select {
		case task := <-manager.writeQueueChan:
			batch = append(batch, task)
		default:
			return batch
		}
	}
}

func (manager *Manager) flushBatch(batch []WriteTask) error {
	return manager.Db.Update(func(txn *badger.Txn) error {
		for _, task := range batch {
			if err := txn.Set([]byte(task.Key), task.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// ForceFlush synchronously drains the queue to disk.
func (manager *Manager) ForceFlush() error {
	req := flushRequest{done: make(chan error, 1)}
	select {
	case manager.forceFlushChan <- req:
	case <-manager.stopChan:
		return fmt.Errorf("write queue already stopped")
	}
	select {
	case err := <-req.done:
		return err
	case <-manager.stopChan:
		return fmt.Errorf("write queue stopped before flush completed")
	}
}

// Read returns the value stored under key.
func (manager *Manager) Read(key string) ([]byte, error) {
	manager.mu.RLock()
	bdb := manager.Db
	manager.mu.RUnlock()
	if bdb == nil {
		return nil, fmt.Errorf("database is not initialized or closed")
	}

	var value []byte
	err := bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Close flushes the queue, stops the flush goroutine and closes Badger.
func (manager *Manager) Close() {
	if err := manager.ForceFlush(); err != nil {
		logs.Error("[db.Close] force flush failed: %v", err)
	}

	select {
	case <-manager.stopChan:
	default:
		close(manager.stopChan)
	}
	manager.wg.Wait()

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.Db != nil {
		_ = manager.Db.Close()
		manager.Db = nil
	}
}
