package sources

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// Source is one PHP file.
type Source struct {
	Path    string
	Content []byte
}

// Extensions lists the file name suffixes picked up from directories.
var Extensions = []string{".php", ".phtml", ".inc"}

func IsPHP(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(Extensions, ext)
}

// Expand turns directories into the PHP files below them and glob patterns
// into their matches. Plain file paths are kept even if they lack a PHP
// extension. The result is sorted and free of duplicates.
type Expand func(paths []string) ([]string, error)

func (Module) Expand(
	fsys afero.Fs,
) Expand {
	return func(paths []string) (ret []string, err error) {
		seen := make(map[string]bool)
		add := func(path string) {
			path = filepath.Clean(path)
			if !seen[path] {
				seen[path] = true
				ret = append(ret, path)
			}
		}

		for _, path := range paths {
			if strings.ContainsAny(path, "*?[") {
				matches, err := afero.Glob(fsys, path)
				if err != nil {
					return nil, fmt.Errorf("glob %s: %w", path, err)
				}
				if len(matches) == 0 {
					return nil, fmt.Errorf("no file matches %s", path)
				}
				for _, match := range matches {
					if isDir, err := afero.IsDir(fsys, match); err == nil && isDir {
						continue
					}
					add(match)
				}
				continue
			}

			info, err := fsys.Stat(path)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(path)
				continue
			}
			if err := afero.Walk(fsys, path, func(p string, info fs.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					if p != path && strings.HasPrefix(info.Name(), ".") {
						return filepath.SkipDir
					}
					return nil
				}
				if IsPHP(p) {
					add(p)
				}
				return nil
			}); err != nil {
				return nil, err
			}
		}

		slices.Sort(ret)
		return ret, nil
	}
}

type Read func(path string) (*Source, error)

func (Module) Read(
	fsys afero.Fs,
) Read {
	return func(path string) (*Source, error) {
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		return &Source{
			Path:    path,
			Content: content,
		}, nil
	}
}

// Write replaces the content of path, keeping its permission bits.
type Write func(path string, content []byte) error

func (Module) Write(
	fsys afero.Fs,
) Write {
	return func(path string, content []byte) error {
		perm := fs.FileMode(0644)
		if info, err := fsys.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
		return afero.WriteFile(fsys, path, content, perm)
	}
}
