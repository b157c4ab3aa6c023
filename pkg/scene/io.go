package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/guidedrag/pkg/errors"
)

// Format is a scene or script file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported file type %q (want .json or .toml)", filepath.Ext(path))
}

// decode reads r in format f into v, rejecting unknown fields.
func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", keys[0].String())
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return nil
}

// Read decodes a scene from r and validates it. Read does not close r.
func Read(r io.Reader, f Format) (*Scene, error) {
	var s Scene
	if err := decode(r, f, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadFile reads and validates the scene at path. The format follows the
// file extension. Errors carry the path.
func ReadFile(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	s, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Write encodes s as indented JSON.
func (s *Scene) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes s as TOML.
func (s *Scene) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes s to path in the format its extension names.
func (s *Scene) WriteFile(path string) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if f == FormatTOML {
		err = s.WriteTOML(&buf)
	} else {
		err = s.Write(&buf)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
