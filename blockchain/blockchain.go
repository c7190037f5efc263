// Package blockchain is the orchestrator of the chain: it owns the pending
// transaction pool, the settlement and block observers, and the local
// signing identity, and serializes every mutation of the {pool, chain}
// pair behind one lock.
package blockchain

import (
	"fmt"
	"math/big"
	"sync"

	"ledger/config"
	"ledger/logs"
	"ledger/types"
)

// BlockPersister receives every committed block for durable storage keyed
// by its header hash. Persistence is best-effort: a failure is logged and
// never rolls back the in-memory append.
type BlockPersister interface {
	SaveBlock(*types.Block) error
}

// OnSettled is a one-shot settlement callback: it fires exactly once, when
// the transaction it was registered for is included in a committed block.
type OnSettled func(types.Transaction)

// OnBlock is a persistent block listener; it fires on every commit, in
// registration order.
type OnBlock func(types.Block)

// Blockchain owns the chain and the pending pool. Single writer: block
// production is serialized with pool draining, so a submission racing a
// commit lands either in that block or in the next one, never lost and
// never twice.
type Blockchain struct {
	mu             sync.Mutex
	chain          *types.Chain
	pending        map[string]types.Transaction
	pendingOrder   []string // insertion order, keeps commits deterministic
	transObservers map[string]OnSettled
	blockObservers []OnBlock

	keypair   *types.BlockKeypair
	submitter types.Address

	// async persistence: block observers must not block the commit path,
	// so disk work is handed to these workers
	persistQueue   chan types.Block
	persisters     []BlockPersister
	persistWorkers int
	stopChan       chan struct{}
	wg             sync.WaitGroup
}

// New builds a Blockchain around a signing keypair, seeds the chain with
// the genesis block, and auto-registers one block observer that hands every
// committed block to the given persisters. Call Start before committing if
// any persisters were supplied.
func New(kp *types.BlockKeypair, cfg *config.Config, persisters ...BlockPersister) (*Blockchain, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	chain, err := types.NewChain()
	if err != nil {
		return nil, err
	}
	bc := &Blockchain{
		chain:          chain,
		pending:        make(map[string]types.Transaction),
		transObservers: make(map[string]OnSettled),
		keypair:        kp,
		submitter:      kp.Address(),
		persistQueue:   make(chan types.Block, cfg.Ledger.PersistQueueSize),
		persisters:     persisters,
		persistWorkers: cfg.Ledger.PersistWorkers,
		stopChan:       make(chan struct{}),
	}
	if len(persisters) > 0 {
		bc.AddBlockListener(bc.enqueuePersist)
	}
	logs.Info("[Ledger] initialized, committer %s", bc.submitter)
	return bc, nil
}

// Start launches the persistence workers.
func (bc *Blockchain) Start() {
	for i := 0; i < bc.persistWorkers; i++ {
		bc.wg.Add(1)
		go bc.runPersistWorker(i)
	}
	logs.Info("[Ledger] started %d persist workers", bc.persistWorkers)
}

// Stop drains the persistence queue and waits for the workers. Safe to
// call more than once.
func (bc *Blockchain) Stop() {
	select {
	case <-bc.stopChan:
	default:
		close(bc.stopChan)
	}
	bc.wg.Wait()
	logs.Info("[Ledger] stopped")
}

// Address returns the orchestrator's submitter/committer identity.
func (bc *Blockchain) Address() types.Address {
	return bc.submitter
}

// SubmitTransaction builds a signed transaction over payload with the
// orchestrator's identity, registers onSettled under the transaction hash,
// and adds the transaction to the pending pool. The payload must be JSON
// serializable. onSettled may be nil.
func (bc *Blockchain) SubmitTransaction(payload interface{}, onSettled OnSettled) (types.Transaction, error) {
	tx, err := types.NewTransaction(bc.submitter, payload, bc.keypair)
	if err != nil {
		return types.Transaction{}, err
	}
	if err := bc.register(tx, onSettled); err != nil {
		return types.Transaction{}, err
	}
	logs.Debug("[Ledger] submitted tx %s", tx.ShortID())
	return tx, nil
}

// SubmitSignedTransaction registers an already-built transaction (e.g. one
// replayed from storage or handed over by an outer layer). The transaction
// is verified before it enters the pool; a hash already pending is rejected
// so a settlement callback can never be registered twice.
func (bc *Blockchain) SubmitSignedTransaction(tx types.Transaction, onSettled OnSettled) error {
	if err := tx.Verify(); err != nil {
		return err
	}
	return bc.register(tx, onSettled)
}

func (bc *Blockchain) register(tx types.Transaction, onSettled OnSettled) error {
	key := tx.Key()
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if _, exists := bc.pending[key]; exists {
		return fmt.Errorf("transaction %s: %w", tx.Hash.Short(), types.ErrDuplicateTransaction)
	}
	bc.pending[key] = tx
	bc.pendingOrder = append(bc.pendingOrder, key)
	if onSettled != nil {
		bc.transObservers[key] = onSettled
	}
	return nil
}

// CommitPendingBlock atomically drains the pool in insertion order into a
// new signed block on top of the chain tip, appends it, and notifies: block
// observers first (registration order), then each committed transaction's
// settlement callback exactly once. An empty pool still commits a valid
// empty block.
func (bc *Blockchain) CommitPendingBlock() (types.Block, error) {
	bc.mu.Lock()

	txs := make([]types.Transaction, 0, len(bc.pendingOrder))
	for _, key := range bc.pendingOrder {
		txs = append(txs, bc.pending[key])
	}

	tip := bc.chain.Tip()
	ordinal := new(big.Int).Add(tip.Header.Ordinal, big.NewInt(1))
	block, err := types.NewBlock(tip.Header.Hash, ordinal, txs, bc.keypair)
	if err != nil {
		bc.mu.Unlock()
		return types.Block{}, fmt.Errorf("build block %s: %w", ordinal, err)
	}

	bc.pending = make(map[string]types.Transaction)
	bc.pendingOrder = nil
	bc.chain.Append(block)

	// snapshot observers and consume settlement callbacks inside the
	// critical section, fire them outside it so a callback may submit
	observers := make([]OnBlock, len(bc.blockObservers))
	copy(observers, bc.blockObservers)
	settlements := make([]OnSettled, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		key := tx.Key()
		if cb, ok := bc.transObservers[key]; ok {
			delete(bc.transObservers, key)
			settlements = append(settlements, cb)
		} else {
			settlements = append(settlements, nil)
		}
	}
	bc.mu.Unlock()

	logs.Info("[Ledger] committed block %s ordinal=%s txs=%d",
		block.Header.Hash.Short(), block.Header.Ordinal, len(block.Transactions))

	for _, notify := range observers {
		notify(block)
	}
	for i, tx := range block.Transactions {
		if settlements[i] != nil {
			settlements[i](tx)
		}
	}
	return block, nil
}

// AddBlockListener registers a persistent observer invoked on every commit.
func (bc *Blockchain) AddBlockListener(onBlock OnBlock) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.blockObservers = append(bc.blockObservers, onBlock)
}

// Blocks returns a read-only snapshot of the chain.
func (bc *Blockchain) Blocks() []types.Block {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.chain.Blocks()
}

// PendingCount reports how many transactions await commitment.
func (bc *Blockchain) PendingCount() int {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return len(bc.pending)
}

// VerifyChain walks the whole chain under the lock.
func (bc *Blockchain) VerifyChain() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.chain.Verify()
}

func (bc *Blockchain) String() string {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return fmt.Sprintf("Blockchain{blocks: %d, pending: %d, transObservers: %d, blockObservers: %d}",
		bc.chain.Length(), len(bc.pending), len(bc.transObservers), len(bc.blockObservers))
}

// enqueuePersist hands a committed block to the workers without blocking
// the commit path; when the queue is full the block is dropped from the
// async path and logged (persistence is best-effort, the chain append has
// already succeeded).
func (bc *Blockchain) enqueuePersist(b types.Block) {
	select {
	case bc.persistQueue <- b:
	default:
		logs.Warn("[Ledger] persist queue full, dropping block %s", b.Header.Hash.Short())
	}
}

func (bc *Blockchain) runPersistWorker(id int) {
	defer bc.wg.Done()
	for {
		select {
		case b := <-bc.persistQueue:
			bc.persist(&b)
		case <-bc.stopChan:
			// drain remaining blocks before exit
			for {
				select {
				case b := <-bc.persistQueue:
					bc.persist(&b)
				default:
					return
				}
			}
		}
	}
}

func (bc *Blockchain) persist(b *types.Block) {
	for _, p := range bc.persisters {
		if err := p.SaveBlock(b); err != nil {
			logs.Error("[Ledger] persist block %s failed: %v", b.Header.Hash.Short(), err)
		}
	}
}
