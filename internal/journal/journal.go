package journal

import (
	"context"
	"sync"
	"time"

	"go-unique-sdk/internal/messages"
	"go-unique-sdk/models"
	"go-unique-sdk/transaction"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS extrinsic_results (
	id BIGSERIAL PRIMARY KEY,
	tx_hash TEXT NOT NULL,
	call TEXT NOT NULL,
	block_hash TEXT,
	block_number BIGINT,
	tx_index INTEGER,
	success BOOLEAN NOT NULL,
	status TEXT NOT NULL,
	error TEXT,
	created_at TIMESTAMPTZ NOT NULL
)`

	insertResultQuery = `INSERT INTO extrinsic_results
	(tx_hash, call, block_hash, block_number, tx_index, success, status, error, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	StatusResult   = "result"
	StatusRejected = "rejected"
)

// Execer is the part of a pgx pool the journal needs
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

func EnsureSchema(ctx context.Context, db Execer) error {
	_, err := db.Exec(ctx, createTableQuery)
	return err
}

const defaultQueueSize = 256

type row struct {
	call        string
	txHash      string
	blockHash   interface{}
	blockNumber interface{}
	txIndex     interface{}
	success     bool
	status      string
	errText     interface{}
	createdAt   time.Time
}

// Recorder is a transaction observer writing one row per finished transaction. Rows are
// queued and written by a single worker, so observing never waits on the database. Write
// failures and rows dropped on a full queue are logged and never reach the transaction.
type Recorder struct {
	db      Execer
	timeout time.Duration
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	rows   chan row
	done   chan struct{}
}

func NewRecorder(db Execer) *Recorder {
	return newRecorder(db, defaultQueueSize)
}

func newRecorder(db Execer, queueSize int) *Recorder {
	r := &Recorder{
		db:      db,
		timeout: 5 * time.Second,
		now:     time.Now,
		rows:    make(chan row, queueSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Close stops accepting rows and waits until the queued ones are written
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.rows)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) OnSubmitted(string) {}

func (r *Recorder) OnIncluded(call string, status models.SubmittableResult) {}

func (r *Recorder) OnResult(call string, result models.ExtrinsicResult) {
	var blockNumber interface{}
	if result.BlockNumber != nil {
		blockNumber = int64(*result.BlockNumber)
	}
	r.enqueue(row{
		call:        call,
		txHash:      result.TxHash,
		blockHash:   result.BlockHash,
		blockNumber: blockNumber,
		txIndex:     result.TxIndex,
		success:     result.IsSuccess,
		status:      StatusResult,
	})
}

func (r *Recorder) OnRejected(call string, err error) {
	var txHash string
	var submissionErr *transaction.SubmissionError
	if errors.As(err, &submissionErr) {
		txHash = submissionErr.TxHash
	}
	var errText interface{}
	if err != nil {
		errText = err.Error()
	}
	r.enqueue(row{call: call, txHash: txHash, status: StatusRejected, errText: errText})
}

func (r *Recorder) enqueue(next row) {
	next.createdAt = r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.logDropped(next.call, errors.New("journal closed"))
		return
	}
	select {
	case r.rows <- next:
	default:
		r.logDropped(next.call, errors.New("journal queue full"))
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for next := range r.rows {
		r.insert(next)
	}
}

func (r *Recorder) insert(next row) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx, insertResultQuery,
		next.txHash, next.call, next.blockHash, next.blockNumber, next.txIndex,
		next.success, next.status, next.errText, next.createdAt,
	)
	if err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			messages.GetComponent(r.insert),
			err,
			messages.POSTGRES_FAILED_TO_INSERT,
			"extrinsic result",
		).ConsoleLog()
	}
}

func (r *Recorder) logDropped(call string, err error) {
	messages.NewSDKMessage(
		messages.LOG_LEVEL_WARNING,
		messages.GetComponent(r.enqueue),
		err,
		messages.POSTGRES_FAILED_TO_INSERT,
		"extrinsic result of "+call,
	).ConsoleLog()
}
