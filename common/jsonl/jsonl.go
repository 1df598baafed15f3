// Package jsonl reads and writes line-delimited JSON files.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"empleos/common/errors"
)

const maxLineSize = 4 * 1024 * 1024

// Write replaces path with one JSON document per item.
func Write[T any](path string, items []T) error {
	return writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, items)
}

// Append adds items to the end of path, creating it when missing.
func Append[T any](path string, items []T) error {
	return writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, items)
}

func writeFile[T any](path string, flag int, items []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Internal("failed to create directory for "+path, err)
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return errors.Internal("failed to open "+path, err)
	}
	defer f.Close()

	if err := Encode(f, items); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes items to w, one per line.
func Encode[T any](w io.Writer, items []T) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return errors.Internal(fmt.Sprintf("failed to encode line %d", i+1), err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Internal("failed to flush jsonl output", err)
	}
	return nil
}

// Read loads every document of path. Blank lines are skipped.
func Read[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("jsonl file not found: "+path, err)
		}
		return nil, errors.Internal("failed to open "+path, err)
	}
	defer f.Close()

	return Decode[T](f)
}

// Decode reads documents from r until EOF.
func Decode[T any](r io.Reader) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	items := []T{}
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(trimSpace(data)) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("invalid json on line %d", line), err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Internal("failed to read jsonl input", err)
	}
	return items, nil
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t' || b[start] == '\r') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\r') {
		end--
	}
	return b[start:end]
}
