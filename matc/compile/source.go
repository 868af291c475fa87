// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compile

import (
	"context"
	"os"

	lru "github.com/hashicorp/golang-lru"

	"github.com/rdtools/matc/core/os/file"
)

// Source resolves shader file names to their bytes. The pipeline never
// assumes which provider is behind the interface.
type Source interface {
	Load(ctx context.Context, fileName string) ([]byte, error)
}

// sourceCacheSize bounds the directory provider's byte cache. Manifests
// reference the same includes and shared sources repeatedly; a small LRU
// keeps the hot set resident.
const sourceCacheSize = 64

// DirectorySource loads shader sources from an on-disk directory, fronted
// by an LRU byte cache.
type DirectorySource struct {
	root  file.Path
	cache *lru.Cache
}

// NewDirectorySource returns a Source rooted at dir.
func NewDirectorySource(dir string) (*DirectorySource, error) {
	cache, err := lru.New(sourceCacheSize)
	if err != nil {
		return nil, err
	}
	return &DirectorySource{root: file.Abs(dir), cache: cache}, nil
}

// Load returns the bytes of the named file under the root directory.
func (s *DirectorySource) Load(ctx context.Context, fileName string) ([]byte, error) {
	if data, ok := s.cache.Get(fileName); ok {
		return data.([]byte), nil
	}
	data, err := s.root.Join(fileName).Read()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, SourceNotFoundError{FileName: fileName}
		}
		return nil, err
	}
	s.cache.Add(fileName, data)
	return data, nil
}

// MapSource serves shader sources from an in-memory map, as used for
// embedded source sets and tests.
type MapSource map[string][]byte

// Load returns the bytes stored under the file name.
func (s MapSource) Load(ctx context.Context, fileName string) ([]byte, error) {
	data, ok := s[fileName]
	if !ok {
		return nil, SourceNotFoundError{FileName: fileName}
	}
	return data, nil
}
