// Package config loads the oggtag command configuration.
//
// A configuration file is TOML (.toml) or INI (.ini, .cfg) with the same
// sections and keys:
//
//	[log]
//	level = "debug"
//
//	[output]
//	color = false
//
//	[retag]
//	vendor = "oggtag"
//
//	[parse]
//	lenient = true
//
// Keys missing from the file keep their Default values. An unknown log
// level is an error.
package config

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/thesyncim/oggtag/internal/logging"
)

// Config holds the command settings.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string

	// Color enables colored status output.
	Color bool

	// Vendor replaces the comment header vendor string on retag.
	// Empty keeps the vendor found in the file.
	Vendor string

	// Lenient makes info and tags recover valid pages from damaged files
	// instead of failing.
	Lenient bool
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Color:    true,
	}
}

// Load reads path on top of Default. The format is chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = cfg.loadTOML(path)
	case ".ini", ".cfg":
		err = cfg.loadINI(path)
	default:
		return cfg, errors.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err == nil {
		_, err = logging.ParseLevel(cfg.LogLevel)
	}
	if err != nil {
		return Default(), errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (cfg *Config) loadTOML(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return err
	}

	if v, ok, err := tomlString(tree, "log.level"); err != nil {
		return err
	} else if ok {
		cfg.LogLevel = v
	}
	if v, ok, err := tomlBool(tree, "output.color"); err != nil {
		return err
	} else if ok {
		cfg.Color = v
	}
	if v, ok, err := tomlString(tree, "retag.vendor"); err != nil {
		return err
	} else if ok {
		cfg.Vendor = v
	}
	if v, ok, err := tomlBool(tree, "parse.lenient"); err != nil {
		return err
	} else if ok {
		cfg.Lenient = v
	}
	return nil
}

func tomlString(tree *toml.Tree, key string) (string, bool, error) {
	if !tree.Has(key) {
		return "", false, nil
	}
	s, ok := tree.Get(key).(string)
	if !ok {
		return "", false, errors.Errorf("%s: want a string, got %T", key, tree.Get(key))
	}
	return s, true, nil
}

func tomlBool(tree *toml.Tree, key string) (bool, bool, error) {
	if !tree.Has(key) {
		return false, false, nil
	}
	b, ok := tree.Get(key).(bool)
	if !ok {
		return false, false, errors.Errorf("%s: want a boolean, got %T", key, tree.Get(key))
	}
	return b, true, nil
}

func (cfg *Config) loadINI(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	cfg.LogLevel = file.Section("log").Key("level").MustString(cfg.LogLevel)
	cfg.Color = file.Section("output").Key("color").MustBool(cfg.Color)
	cfg.Vendor = file.Section("retag").Key("vendor").MustString(cfg.Vendor)
	cfg.Lenient = file.Section("parse").Key("lenient").MustBool(cfg.Lenient)
	return nil
}
