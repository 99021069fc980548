// Package driver orchestrates the expansion pipeline for declaration files:
// parse, validate, expand, emit, write. Each declaration file is processed
// independently with its own diagnostics bag; a failure in one file never
// affects another.
package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"enumrange/internal/check"
	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
	"enumrange/internal/expand"
	"enumrange/internal/gen"
	"enumrange/internal/parse"
	"enumrange/internal/pipeline"
	"enumrange/internal/source"
)

// defaultMaxDiagnostics bounds the bag when the caller leaves
// MaxDiagnostics unset.
const defaultMaxDiagnostics = 100

// Options configures one expansion run.
type Options struct {
	// MaxDiagnostics bounds the per-file diagnostics bag; 0 means the
	// default limit.
	MaxDiagnostics int
	// CheckOnly runs the full pipeline but writes nothing.
	CheckOnly bool
	// OutputPath overrides the generated file location (single file runs only).
	OutputPath string
	// EnableDiskCache reuses previously generated output for unchanged
	// declaration files.
	EnableDiskCache bool
	// Sink receives progress events; nil means no progress reporting.
	Sink pipeline.ProgressSink
}

// Result is the outcome of expanding one declaration file.
type Result struct {
	Path       string
	FileID     source.FileID
	Bag        *diag.Bag
	Enum       *enumspec.EnumSpec
	Expansion  *expand.Result
	Source     []byte
	OutputPath string
	CacheHit   bool
}

// ExpandFile runs the pipeline for a single declaration file.
func ExpandFile(ctx context.Context, path string, opts Options) (*Result, *source.FileSet, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load declaration %q: %w", path, err)
	}

	var cache *DiskCache
	if opts.EnableDiskCache {
		if cache, err = OpenDiskCache(cacheAppName); err != nil {
			return nil, nil, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	result := expandLoaded(ctx, fileSet, fileID, path, cache, opts)
	return result, fileSet, nil
}

func sinkOf(opts Options) pipeline.ProgressSink {
	if opts.Sink == nil {
		return pipeline.NopSink{}
	}
	return opts.Sink
}

// expandLoaded runs the pipeline stages for an already loaded file. The
// FileSet is only read here, so directory runs may share one across
// goroutines.
func expandLoaded(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, path string, cache *DiskCache, opts Options) *Result {
	sink := sinkOf(opts)
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	reporter := diag.BagReporter{Bag: bag}
	result := &Result{Path: path, FileID: fileID, Bag: bag}
	file := fileSet.Get(fileID)

	started := time.Now()
	fail := func(stage pipeline.Stage) *Result {
		sink.OnEvent(pipeline.Event{File: path, Stage: stage, Status: pipeline.StatusError, Elapsed: time.Since(started)})
		return result
	}
	if err := ctx.Err(); err != nil {
		return result
	}

	// Кеш по содержимому декларации: попадание означает, что весь
	// конвейер уже прошёл без ошибок.
	if cached, ok := cache.Get(file.Hash); ok {
		result.Source = cached.Source
		result.OutputPath = resolveOutput(cached.OutputPath, opts)
		result.CacheHit = true
		if !opts.CheckOnly {
			if writeOutput(result, reporter, file) {
				sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: time.Since(started)})
			} else {
				return fail(pipeline.StageWrite)
			}
		}
		return result
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	result.Enum = parse.File(fileSet, fileID, parse.Options{Reporter: reporter})
	if result.Enum == nil || bag.HasErrors() {
		return fail(pipeline.StageParse)
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageValidate, Status: pipeline.StatusWorking})
	if !check.Enum(result.Enum, check.Options{Reporter: reporter}) {
		return fail(pipeline.StageValidate)
	}

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageExpand, Status: pipeline.StatusWorking})
	expansion, ok := expand.Enum(result.Enum, expand.Options{Reporter: reporter})
	if !ok {
		return fail(pipeline.StageExpand)
	}
	result.Expansion = expansion

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageEmit, Status: pipeline.StatusWorking})
	generated, ok := gen.Source(result.Enum, expansion, gen.Options{Reporter: reporter, SpecPath: path})
	if !ok {
		return fail(pipeline.StageEmit)
	}
	result.Source = generated
	result.OutputPath = resolveOutput(gen.OutputPath(result.Enum, path), opts)

	if !opts.CheckOnly {
		sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
		if !writeOutput(result, reporter, file) {
			return fail(pipeline.StageWrite)
		}
	}

	cache.Put(file.Hash, &cachePayload{
		Schema:     cacheSchemaVersion,
		OutputPath: gen.OutputPath(result.Enum, path),
		Source:     generated,
	})

	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: time.Since(started)})
	return result
}

func resolveOutput(defaultPath string, opts Options) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	return defaultPath
}

func writeOutput(result *Result, reporter diag.Reporter, file *source.File) bool {
	if err := os.WriteFile(result.OutputPath, result.Source, 0o644); err != nil {
		diag.ReportError(reporter, diag.IOWriteFileError, source.At(file.ID, 0, 0),
			fmt.Sprintf("failed to write %q: %s", result.OutputPath, err)).Emit()
		return false
	}
	return true
}
