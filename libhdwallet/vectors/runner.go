package vectors

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/kaspanet/hdwallet/infrastructure/logger"
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
)

const progressLogInterval = 10 * time.Second

// RowError is returned by Runner.VerifyAll for the first row that failed
// to parse or verify.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

// Unwrap satisfies the errors.Unwrap interface
func (e *RowError) Unwrap() error {
	return e.Err
}

// Runner verifies streams of vectors on a fixed pool of workers.
type Runner struct {
	curve    curves.Provider
	versions bip32.KeyVersions
	workers  int
}

// NewRunner returns a Runner verifying vectors with curve under the given
// versions. A non-positive number of workers means one per CPU.
func NewRunner(curve curves.Provider, versions bip32.KeyVersions, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		curve:    curve,
		versions: versions,
		workers:  workers,
	}
}

type verifyJob struct {
	row    int
	vector *Vector
}

type verifyResult struct {
	row int
	err error
}

// VerifyAll verifies every vector read from r and returns how many
// verified. On failure it returns a *RowError for the lowest failing row;
// rows after the first observed failure are not dispatched anymore.
func (runner *Runner) VerifyAll(r io.Reader) (int, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "VerifyAll")
	defer onEnd()

	jobs := make(chan verifyJob)
	results := make(chan verifyResult)
	quit := make(chan struct{})

	// The reader's errors are delivered through results, which stays
	// open until every worker has returned and the feeder is done.
	var producers sync.WaitGroup
	producers.Add(runner.workers + 1)
	spawn(func() {
		defer producers.Done()
		defer close(jobs)
		runner.feed(r, jobs, results, quit)
	})
	for i := 0; i < runner.workers; i++ {
		spawn(func() {
			defer producers.Done()
			for job := range jobs {
				results <- verifyResult{row: job.row, err: Verify(job.vector, runner.curve, runner.versions)}
			}
		})
	}
	spawn(func() {
		producers.Wait()
		close(results)
	})

	progress := logger.NewProgressLogger(log, "Verified vectors", 0, progressLogInterval)
	verified := 0
	var firstFailure *RowError
	for result := range results {
		if result.err == nil {
			verified++
			progress.Processed(verified)
			continue
		}

		log.Debugf("Row %d failed: %s", result.row, result.err)
		if firstFailure == nil {
			close(quit)
		}
		if firstFailure == nil || result.row < firstFailure.Row {
			firstFailure = &RowError{Row: result.row, Err: result.err}
		}
	}

	if firstFailure != nil {
		return verified, firstFailure
	}
	log.Infof("Verified %d vectors on %d workers", verified, runner.workers)
	return verified, nil
}

func (runner *Runner) feed(r io.Reader, jobs chan<- verifyJob, results chan<- verifyResult, quit <-chan struct{}) {
	reader := NewReader(r)
	for {
		vector, row, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			select {
			case results <- verifyResult{row: row, err: err}:
			case <-quit:
			}
			return
		}

		select {
		case jobs <- verifyJob{row: row, vector: vector}:
		case <-quit:
			return
		}
	}
}
