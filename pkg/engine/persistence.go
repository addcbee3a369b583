package engine

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// SaveToFile writes every index, alias binding and document to filename.
// The file is written next to its destination and renamed into place.
func (e *Engine) SaveToFile(filename string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	storageData := NewStorageData()
	for name, index := range e.indices {
		record := IndexRecord{
			Body:      map[string]interface{}(index.Body),
			Aliases:   sortedKeys(index.Aliases),
			CreatedAt: index.CreatedAt,
		}
		for _, id := range documentIDs(index) {
			record.Documents = append(record.Documents, *index.Documents[id])
		}
		storageData.Indices[name] = record
	}

	msgpackData, err := msgpack.Marshal(storageData)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	var flags uint8
	payload := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, payload, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	if n == 0 {
		// incompressible
		flags |= FlagUncompressed
		payload = msgpackData
	} else {
		payload = payload[:n]
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	tmpName := filename + ".tmp"
	file, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteHeader(file, flags, len(msgpackData)); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := file.Write(payload); err != nil {
		file.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to move data file into place: %w", err)
	}

	e.dirty = false
	return nil
}

// LoadFromFile replaces the namespace with the contents of filename.
// A missing file leaves the engine empty and is not an error.
func (e *Engine) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header, err := ReadHeader(file)
	if err != nil {
		return fmt.Errorf("invalid file header: %w", err)
	}
	payload, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}

	msgpackData := payload
	if header.Flags&FlagUncompressed == 0 {
		msgpackData = make([]byte, header.RawSize)
		n, err := lz4.UncompressBlock(payload, msgpackData)
		if err != nil {
			return fmt.Errorf("failed to decompress data: %w", err)
		}
		msgpackData = msgpackData[:n]
	}

	var storageData StorageData
	if err := msgpack.Unmarshal(msgpackData, &storageData); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	indices := make(map[string]*Index, len(storageData.Indices))
	documentCount := 0
	for name, record := range storageData.Indices {
		index := newIndex(name, domain.IndexBody(record.Body))
		if !record.CreatedAt.IsZero() {
			index.CreatedAt = record.CreatedAt
		}
		for _, alias := range record.Aliases {
			index.Aliases[alias] = struct{}{}
		}
		for i := range record.Documents {
			doc := record.Documents[i]
			doc.Index = name
			index.Documents[doc.ID] = &doc
		}
		documentCount += len(index.Documents)
		indices[name] = index
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.indices = indices
	e.dirty = false

	log.Printf("INFO: Loaded %d indices with %d documents from %s", len(indices), documentCount, filename)
	return nil
}
