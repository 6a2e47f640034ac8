// Package batch provides the on-disk encoding of transaction batches. The
// core analysis does not depend on this format; it exists for the generator
// and the command line tool.
package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dajuguan/PEVM/vm"
)

// Decode reads a JSON-encoded batch. A single malformed key anywhere in the
// input fails the whole load; no partial batch is returned.
func Decode(reader io.Reader) ([]vm.Tx, error) {
	var txs []vm.Tx
	if err := json.NewDecoder(reader).Decode(&txs); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	return txs, nil
}

// Encode writes the batch as indented JSON.
func Encode(writer io.Writer, txs []vm.Tx) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(txs)
}

// ReadFile loads a batch from the given file. Files with a .snappy suffix
// are expected to contain a snappy-framed stream.
func ReadFile(path string) ([]vm.Tx, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if isCompressed(path) {
		reader = snappy.NewReader(file)
	}
	return Decode(reader)
}

// WriteFile stores a batch in the given file, compressing it if the file
// name carries a .snappy suffix.
func WriteFile(path string, txs []vm.Tx) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	if !isCompressed(path) {
		return Encode(file, txs)
	}
	writer := snappy.NewBufferedWriter(file)
	if err := Encode(writer, txs); err != nil {
		return err
	}
	return writer.Close()
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".snappy")
}
