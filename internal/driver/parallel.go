package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"enumrange/internal/diag"
	"enumrange/internal/source"
)

// DeclSuffix is the file name suffix of enum declaration files.
const DeclSuffix = ".enum.toml"

// ListDeclFiles возвращает отсортированный список всех *.enum.toml в
// директории.
func ListDeclFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, DeclSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every declaration file under dir in parallel. Files are
// preloaded into a shared FileSet before any goroutine starts; after that
// the FileSet is only read. Each file keeps its own bag, so results are
// independent exactly as single-file runs are.
func ExpandDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []*Result, error) {
	files, err := ListDeclFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	var cache *DiskCache
	if opts.EnableDiskCache {
		if cache, err = OpenDiskCache(cacheAppName); err != nil {
			return nil, nil, err
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					maxDiag := opts.MaxDiagnostics
					if maxDiag <= 0 {
						maxDiag = defaultMaxDiagnostics
					}
					bag := diag.NewBag(maxDiag)
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = &Result{Path: path, Bag: bag}
					return nil
				}

				// Per-file output override makes no sense for directories.
				fileOpts := opts
				fileOpts.OutputPath = ""

				results[i] = expandLoaded(gctx, fileSet, fileIDs[path], path, cache, fileOpts)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
