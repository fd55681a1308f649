package renderer

import (
	"runtime"
	"sync"

	"github.com/pathforge/go-pathtracer/pkg/core"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band       Band
	PassNumber int
	Samples    int   // Samples to add to every pixel of the band in this pass
	Seed       int64 // Seed of the task's own random generator
}

// BandResult is sent exactly once per task: the band's row range and its pixel buffer
type BandResult struct {
	Band       Band
	PassNumber int
	Pixels     []PixelStats // Row-major, Band.Bounds.Dx() pixels per row
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	renderer    *BandRenderer
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize should be at least the number of tasks submitted per pass.
func NewWorkerPool(renderer *BandRenderer, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, queueSize),
		resultQueue: make(chan BandResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each task draws from its own generator, so results do not depend on
		// which worker picked the task up
		sampler := core.NewSeededSampler(task.Seed)
		pixels := w.renderer.RenderBand(task.Band, task.Samples, sampler)

		w.resultQueue <- BandResult{
			Band:       task.Band,
			PassNumber: task.PassNumber,
			Pixels:     pixels,
		}
	}
}
