package simulate

import (
	"sync"

	"github.com/lambert-ike-1232/pidlab/ssm"
)

// Job names a single simulation to run: a system, a time grid and the input
// samples on that grid.
type Job struct {
	Name   string
	System *ssm.LinearSystem
	T      []float64
	U      []float64
}

// Result pairs a job name with its response, or with the error the
// simulation returned.
type Result struct {
	Name     string
	Response *Response
	Err      error
}

// Batch runs every job in its own goroutine and returns the results in job
// order.
func Batch(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			resp, err := ForcedResponse(job.System, job.T, job.U)
			results[i] = Result{Name: job.Name, Response: resp, Err: err}
		}(i, jobs[i])
	}
	wg.Wait()
	return results
}
