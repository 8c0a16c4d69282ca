// Package util is a grab bag for file handling shared by the binaries.
package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog opens path for appending, falling back to discard with a warning.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

// CloseLog closes a writer from OpenLog when it is a file.
func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig reads yaml or toml into cfg, by file extension.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	if isToml(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

// WriteConfig writes cfg as yaml or toml, by file extension.
func WriteConfig(cfg any, path string, mode os.FileMode) (err error) {

	var data []byte
	if isToml(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// SampleConfig writes a yaml sample to path unless something is already there.
// For a toml path the sample is decoded into cfg and written as toml.
func SampleConfig(data []byte, cfg any, path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}

	if isToml(path) {
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to unmarshal sample")
			return
		}
		err = WriteConfig(cfg, path, mode)
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// ReadText reads a file, or stdin for "-", as text.
func ReadText(path string) (text string, err error) {

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read log from %s", path)
		return
	}

	text = string(data)
	return
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
