package installer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal encodes v as YAML when format is "yaml" or "yml", JSON otherwise.
func Marshal(format string, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(v)
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}

// WriteResultFile serializes res to path. The format follows the file
// extension: .yaml/.yml for YAML, anything else for JSON. The file is written
// to a temp file first and renamed so readers never see a partial result.
func WriteResultFile(path string, res *Result) error {
	data, err := Marshal(strings.TrimPrefix(filepath.Ext(path), "."), res)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}

	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ReadResultFile reads a result written by WriteResultFile.
func ReadResultFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var res Result
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &res)
	default:
		err = json.Unmarshal(data, &res)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
