package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"factorlint/internal/diag"
	"factorlint/internal/mddoc"
	"factorlint/internal/source"
)

// EventStatus describes per-file progress for UI consumers.
type EventStatus uint8

const (
	// EventStart is emitted when a file begins linting.
	EventStart EventStatus = iota
	// EventClean — файл без диагностик.
	EventClean
	// EventWarnings — файл с предупреждениями, без ошибок.
	EventWarnings
	// EventErrors — файл с ошибками.
	EventErrors
	// EventFailed — файл не удалось загрузить.
	EventFailed
)

// Event is one progress notification from a directory run.
type Event struct {
	Path   string
	Status EventStatus
}

// CheckDirResult содержит результат проверки одного файла
type CheckDirResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Doc      *mddoc.Document
	CacheHit bool
}

// ListMarkdownFiles возвращает отсортированный список всех *.md файлов в
// директории.
func ListMarkdownFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Скрытые каталоги и vendor не обходим.
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".markdown") {
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

// CheckDir lints all markdown files under dir in parallel. progress may be
// nil; when set it is called from worker goroutines and must be
// goroutine-safe.
func CheckDir(ctx context.Context, dir string, opts CheckOptions, jobs int, progress func(Event)) (*source.FileSet, []CheckDirResult, error) {
	opts = opts.withDefaults()

	files, err := ListMarkdownFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// Создаём FileSet и предзагружаем все файлы; дальше только чтение.
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			// Пустой виртуальный файл, чтобы диагностике было на что указать.
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	var cache *DiskCache
	if opts.EnableCache {
		if c, err := OpenDiskCache("factorlint"); err == nil {
			cache = c
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	notify := func(ev Event) {
		if progress != nil {
			progress(ev)
		}
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]CheckDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			notify(Event{Path: path, Status: EventStart})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: fileIDs[path]},
				})
				results[i] = CheckDirResult{Path: path, FileID: fileIDs[path], Bag: bag}
				notify(Event{Path: path, Status: EventFailed})
				return nil
			}

			res := checkLoaded(fileSet, fileIDs[path], opts, cache)
			results[i] = CheckDirResult{
				Path:     path,
				FileID:   res.FileID,
				Bag:      res.Bag,
				Doc:      res.Doc,
				CacheHit: res.CacheHit,
			}

			switch {
			case res.Bag.HasErrors():
				notify(Event{Path: path, Status: EventErrors})
			case res.Bag.HasWarnings():
				notify(Event{Path: path, Status: EventWarnings})
			default:
				notify(Event{Path: path, Status: EventClean})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// MergeBags собирает диагностики всех файлов в один отсортированный Bag.
func MergeBags(results []CheckDirResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()
	return merged
}
