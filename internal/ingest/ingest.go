package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"wayfinder/internal/config"
	"wayfinder/internal/parser"
	"wayfinder/internal/store"
)

func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	log := options.logger()
	result := &Result{}
	sourceFiles := make(map[string][]string)
	excludes := cfg.ExcludePaths()

	for _, source := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var existingHashes map[string]string
		if !options.Full {
			var err error
			existingHashes, err = db.GetSourceHashes(ctx, source.Name)
			if err != nil {
				return nil, fmt.Errorf("get source hashes for %s: %w", source.Name, err)
			}
		}

		roots := make([]string, 0, len(source.Paths))
		for _, p := range source.Paths {
			roots = append(roots, cfg.Resolve(p))
		}
		files, err := WalkSnapshotFiles(roots, excludes)
		if err != nil {
			return nil, fmt.Errorf("walking files for source %s: %w", source.Name, err)
		}
		sourceFiles[source.Name] = files

		for _, path := range files {
			hash, err := computeHash(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
				continue
			}
			if !options.Full {
				if existing, ok := existingHashes[path]; ok && existing == hash {
					result.FilesSkipped++
					continue
				}
			}

			doc, err := parser.ParseFile(path)
			if err != nil {
				if errors.Is(err, parser.ErrMissingKind) {
					log.Debug("skipping file without kind", zap.String("file", path))
					result.FilesSkipped++
					continue
				}
				result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
				continue
			}

			stats, err := db.ReplaceSource(ctx, store.SourceDocument{
				Source:     source.Name,
				SourceFile: path,
				SourceHash: hash,
				Campus:     doc.Campus,
				Building:   doc.Building,
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing %s: %w", path, err))
				continue
			}
			log.Debug("ingested snapshot file",
				zap.String("source", source.Name),
				zap.String("file", path),
				zap.String("kind", string(doc.Kind)),
			)
			result.add(stats)
		}
	}

	for _, source := range cfg.Sources {
		deleted, err := db.RemoveStaleSources(ctx, source.Name, sourceFiles[source.Name])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("removing stale sources for %s: %w", source.Name, err))
			continue
		}
		result.SourcesRemoved += int(deleted)
	}

	return result, nil
}

// WalkSnapshotFiles lists the snapshot files under roots in lexical order,
// skipping anything under an excluded path.
func WalkSnapshotFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !parser.IsSnapshotFile(d.Name()) {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// byte order, the same order the stores load rows in (source_file)
	sort.Strings(files)
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
