package engine

import (
	"context"
	"log"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/szuwgh/edgarsent/pkg/fileutil"
	"github.com/szuwgh/edgarsent/pkg/filing"
	"github.com/szuwgh/edgarsent/pkg/metrics"
	"github.com/szuwgh/edgarsent/util"
)

const (
	DefaultMmapThreshold = 1 << 20 // 1MB
	DefaultProgressEvery = 1000
)

// Status tags a Result.
type Status int

const (
	Scored Status = iota + 1
	Failed
)

func (s Status) String() string {
	switch s {
	case Scored:
		return metrics.StatusScored
	case Failed:
		return metrics.StatusFailed
	}
	return "unknown"
}

// Result is the outcome of one file. Payload is set when Status is Scored, Err
// when it is Failed. Meta is always derived from the filename; Warning is set
// when some of it could not be read.
type Result struct {
	Status  Status
	Path    string
	Name    string
	Meta    filing.Metadata
	Warning error
	Payload interface{}
	Err     error
}

// Processor computes the payload of one document. text may be backed by a file
// mapping that is released when Processor returns, so it must not be retained.
type Processor func(text string) interface{}

type Options struct {
	// Workers defaults to the number of CPUs.
	Workers       int
	MmapThreshold int64
	ProgressEvery int
}

// Summary counts the files of one run.
type Summary struct {
	Considered int
	Scored     int
	Failed     int
	Warnings   int
	Elapsed    time.Duration
}

// Driver fans documents out to a bounded pool of workers and collects their
// results on the calling goroutine.
type Driver struct {
	opts    Options
	metrics *metrics.Metrics
}

func NewDriver(opts Options, m *metrics.Metrics) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if m == nil {
		m = metrics.New()
	}
	return &Driver{opts: opts, metrics: m}
}

func (d *Driver) Workers() int {
	return d.opts.Workers
}

// Run processes every path and calls collect once per file, in completion
// order, always from the calling goroutine. A failing file never stops the
// run; cancelling ctx stops dispatch, lets in-flight files finish and returns
// ctx.Err().
func (d *Driver) Run(ctx context.Context, paths []string, process Processor, collect func(Result)) (Summary, error) {
	start := time.Now()
	workers := d.opts.Workers
	if workers > len(paths) {
		workers = len(paths)
	}

	tasks := make(chan string)
	results := make(chan Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range tasks {
				results <- d.processFile(path, process)
			}
		}()
	}
	go func() {
		defer close(tasks)
		for _, p := range paths {
			select {
			case tasks <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	s := Summary{Considered: len(paths)}
	done := 0
	for r := range results {
		done++
		if r.Warning != nil {
			s.Warnings++
			d.metrics.MetadataWarns.Inc()
			log.Println("warn", r.Warning)
		}
		switch r.Status {
		case Scored:
			s.Scored++
		case Failed:
			s.Failed++
			log.Println("skip", r.Err)
		}
		d.metrics.Documents.WithLabelValues(r.Status.String()).Inc()
		collect(r)
		if done%d.opts.ProgressEvery == 0 {
			log.Printf("progress %d/%d files, %d failed", done, len(paths), s.Failed)
		}
	}
	s.Elapsed = time.Since(start)
	d.metrics.RunDuration.Set(s.Elapsed.Seconds())
	if err := ctx.Err(); err != nil {
		return s, errors.Wrapf(err, "run stopped after %d of %d files", done, len(paths))
	}
	return s, nil
}

func (d *Driver) processFile(path string, process Processor) (r Result) {
	r.Path = path
	r.Name = filepath.Base(path)
	r.Meta, r.Warning = filing.Parse(path)

	doc, err := fileutil.ReadDocument(path, d.opts.MmapThreshold)
	if err != nil {
		r.Status = Failed
		r.Err = &FileReadError{Path: path, Err: err}
		return r
	}
	defer doc.Close()
	defer func() {
		if p := recover(); p != nil {
			r.Status = Failed
			r.Payload = nil
			r.Err = errors.Errorf("process %s: panic: %v", path, p)
		}
	}()
	r.Payload = process(util.Byte2Str(doc.Bytes()))
	r.Status = Scored
	return r
}
