// Package content loads knowledge entries authored as YAML or JSON files.
//
// A file holds one entry:
//
//	question:
//	  id: go-maps
//	  title: map 的实现
//	  category: Go
//	  content: map 的底层结构是什么?
//	  tags: [go, map]
//	body:
//	  - type: callout
//	    variant: success
//	    title: 核心要点
//	    children:
//	      - type: list
//	        items: [哈希表, 渐进式扩容]
//	  - type: code
//	    language: go
//	    max_height: 20
//	    code: |
//	      m := map[string]int{}
//
// The entry key is question.id, or the file name without extension when the
// id is empty.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/kcards/pkg/debug"
	"github.com/vanderheijden86/kcards/pkg/entries"
	"github.com/vanderheijden86/kcards/pkg/model"
)

// Extensions lists the file extensions LoadDir picks up.
var Extensions = []string{".yaml", ".yml", ".json"}

// IsContentFile reports whether path has one of the supported extensions.
func IsContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile parses a single entry file.
func LoadFile(path string) (model.CardDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CardDoc{}, fmt.Errorf("read entry: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes an entry document. The format is chosen from the extension of
// path; anything other than .json is treated as YAML.
func Parse(data []byte, path string) (model.CardDoc, error) {
	var (
		doc model.CardDoc
		err error
	)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		doc, err = parseJSON(data)
	} else {
		doc, err = parseYAML(data)
	}
	if err != nil {
		return model.CardDoc{}, err
	}
	if len(doc.Body) == 0 {
		return model.CardDoc{}, fmt.Errorf("entry has no body")
	}
	return doc, nil
}

func parseJSON(data []byte) (model.CardDoc, error) {
	var doc model.CardDoc
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return model.CardDoc{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return model.CardDoc{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return model.CardDoc{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAML(data []byte) (model.CardDoc, error) {
	var doc model.CardDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return model.CardDoc{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return model.CardDoc{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return model.CardDoc{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}

// Module turns a parsed document into a catalog module. The block tree is
// checked once here so shape errors surface at load time rather than on open.
func Module(key string, doc model.CardDoc) (entries.Module, error) {
	if _, err := model.BlocksOf(doc.Body); err != nil {
		return entries.Module{}, err
	}
	return entries.Module{
		Key: key,
		Factory: func(id string) (*model.QuestionCard, error) {
			d := doc
			d.Question.ID = id
			return d.Card()
		},
	}, nil
}

// LoadDir parses every entry file directly inside dir and returns the modules
// sorted by key. Any bad file fails the whole load.
func LoadDir(ctx context.Context, dir string) ([]entries.Module, error) {
	start := time.Now()
	defer func() { debug.LogTiming("content.LoadDir "+dir, time.Since(start)) }()

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	var paths []string
	for _, e := range dirEntries {
		if e.IsDir() || !IsContentFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	modules := make([]entries.Module, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(16)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			key := doc.Question.ID
			if key == "" {
				key = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			m, err := Module(key, doc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Key < modules[j].Key })
	for i := 1; i < len(modules); i++ {
		if modules[i].Key == modules[i-1].Key {
			return nil, fmt.Errorf("%s: duplicate entry key %q", dir, modules[i].Key)
		}
	}
	debug.Logw("loaded content dir", "dir", dir, "entries", len(modules))
	return modules, nil
}

// LoadDirs loads several directories in order and concatenates the results.
func LoadDirs(ctx context.Context, dirs []string) ([]entries.Module, error) {
	var out []entries.Module
	for _, dir := range dirs {
		mods, err := LoadDir(ctx, dir)
		if err != nil {
			return nil, err
		}
		out = append(out, mods...)
	}
	return out, nil
}
