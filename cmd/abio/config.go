package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/abio"
)

// fileConfig is the configuration file, TOML or YAML by extension.
// Command line flags override it.
//
//	endian = "big"
//	limit  = 4096
//	type   = "u32"
type fileConfig struct {
	Endian string `toml:"endian" yaml:"endian"`
	Type   string `toml:"type" yaml:"type"`
	Limit  int    `toml:"limit" yaml:"limit"`
}

func defaultConfig() fileConfig {
	def := abio.DefaultCodec()
	return fileConfig{
		Endian: def.Endian().String(),
		Limit:  int(def.Limit()),
	}
}

func loadConfig(path string) (fileConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAMLConfig(path)
	default:
		return loadTOMLConfig(path)
	}
}

func loadYAMLConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg := defaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadTOMLConfig(path string) (fileConfig, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fileConfig{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c fileConfig) codec() (abio.Codec, error) {
	order, err := abio.ParseEndianness(c.Endian)
	if err != nil {
		return abio.Codec{}, err
	}
	return abio.NewCodecBuilder().
		WithEndian(order).
		WithLimit(abio.Limit(c.Limit)).
		Build()
}
