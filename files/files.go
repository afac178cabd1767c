// Package files loads and stores documents and browses the directory tree.
package files

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"

	"goditor/buffer"
)

// Read loads the file at path. A file that does not exist yet reads as empty.
func Read(path string) (*buffer.Buffer, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return buffer.New(""), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return buffer.ReadFrom(bufio.NewReader(file))
}

// Write replaces the file at path with content.
func Write(path string, content io.WriterTo) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	_, err = content.WriteTo(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
