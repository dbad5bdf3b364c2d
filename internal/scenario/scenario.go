// Package scenario loads scripted keyboard input and replays it through the
// driver stack on top of an emulated controller.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Scenario is a scripted session.
type Scenario struct {
	Name    string  `yaml:"name" toml:"name"`
	Devices Devices `yaml:"devices" toml:"devices"`
	Steps   []Step  `yaml:"steps" toml:"steps"`
}

// Devices selects what is plugged into the emulated controller.
type Devices struct {
	Keyboard bool `yaml:"keyboard" toml:"keyboard"`
	Mouse    bool `yaml:"mouse" toml:"mouse"`
	// MouseID is the identity byte of the mouse (0x00, 0x03 or 0x04).
	MouseID int `yaml:"mouseId" toml:"mouseId"`
}

// Step is raw scancode bytes, text typed on the reference layout, or both
// (bytes first).
type Step struct {
	Comment string `yaml:"comment,omitempty" toml:"comment,omitempty"`
	Bytes   []int  `yaml:"bytes,omitempty" toml:"bytes,omitempty"`
	Text    string `yaml:"text,omitempty" toml:"text,omitempty"`
}

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file extension %q", filepath.Ext(path))
	}
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses a scenario and validates its byte values.
func Decode(r io.Reader, format Format) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s Scenario
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *Scenario, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatTOML:
		data, err = toml.Marshal(*s)
	default:
		return fmt.Errorf("unsupported scenario format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *Scenario) validate() error {
	for i, st := range s.Steps {
		for _, b := range st.Bytes {
			if b < 0 || b > 0xFF {
				return fmt.Errorf("step %d: byte %d out of range", i, b)
			}
		}
	}
	if s.Devices.MouseID < 0 || s.Devices.MouseID > 0xFF {
		return fmt.Errorf("mouse id %d out of range", s.Devices.MouseID)
	}
	return nil
}
