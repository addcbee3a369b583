package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

const (
	// Magic bytes to identify our file format
	MagicBytes = "ESMG"
	// Current version
	FormatVersion = 1
	// File extension for our data files
	FileExtension = ".esmg"
)

// Header flags
const (
	// FlagUncompressed marks a payload stored as plain MessagePack
	FlagUncompressed uint8 = 1 << iota
)

// FileHeader represents the header of our data file
type FileHeader struct {
	Magic    [4]byte // "ESMG"
	Version  uint8   // Format version
	Flags    uint8
	Reserved [2]byte
	RawSize  uint32 // Size of the MessagePack payload before compression
}

// WriteHeader writes the file header to the given writer
func WriteHeader(w io.Writer, flags uint8, rawSize int) error {
	header := FileHeader{
		Magic:   [4]byte{'E', 'S', 'M', 'G'},
		Version: FormatVersion,
		Flags:   flags,
		RawSize: uint32(rawSize),
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// StorageData represents the namespace as written to disk
type StorageData struct {
	Indices map[string]IndexRecord `msgpack:"indices"`
}

// IndexRecord is the persisted form of an Index
type IndexRecord struct {
	Body      map[string]interface{}  `msgpack:"body"`
	Aliases   []string                `msgpack:"aliases,omitempty"`
	Documents []domain.StoredDocument `msgpack:"documents,omitempty"`
	CreatedAt time.Time               `msgpack:"created_at"`
}

// NewStorageData creates a new empty storage data structure
func NewStorageData() *StorageData {
	return &StorageData{
		Indices: make(map[string]IndexRecord),
	}
}
