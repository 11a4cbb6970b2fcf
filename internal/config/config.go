// Package config loads the editor settings file.
//
// Пакет config загружает файл настроек редактора (TOML).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"textpad/internal/textenc"
)

// EnvPath overrides the config file location.
const EnvPath = "TEXTPAD_CONFIG"

var ErrInvalid = errors.New("invalid configuration")

type Font struct {
	Family string `toml:"family"`
	Size   int    `toml:"size"`
	Style  string `toml:"style"`
}

// Config mirrors the keys of config.toml.
type Config struct {
	Font   Font   `toml:"font"`
	BG     string `toml:"bg"`
	FG     string `toml:"fg"`
	Height int    `toml:"height"`
	Width  int    `toml:"width"`

	CaseInsens bool `toml:"caseinsens"`

	OpenAskUser           bool   `toml:"openAskUser"`
	OpenEncoding          string `toml:"openEncoding"`
	SavesUseKnownEncoding int    `toml:"savesUseKnownEncoding"`
	SavesAskUser          bool   `toml:"savesAskUser"`
	SavesEncoding         string `toml:"savesEncoding"`

	LogFile string `toml:"logFile"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Font:       Font{Family: "courier", Size: 9, Style: "normal"},
		BG:         "white",
		FG:         "black",
		Width:      115,
		CaseInsens: true,
	}
}

// Path returns $TEXTPAD_CONFIG or <user config dir>/textpad/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "textpad", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults. Keys the file sets but Config does not know are returned.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil, nil
	}
	if err != nil {
		return Default(), nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := cfg.Validate(); err != nil {
		return Default(), unknown, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, unknown, nil
}

func (c Config) Validate() error {
	if c.SavesUseKnownEncoding < 0 || c.SavesUseKnownEncoding > 2 {
		return fmt.Errorf("%w: savesUseKnownEncoding must be 0, 1 or 2, got %d", ErrInvalid, c.SavesUseKnownEncoding)
	}
	if c.Width < 0 || c.Height < 0 || c.Font.Size < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalid)
	}
	return nil
}

// Policy returns the encoding-related settings.
func (c Config) Policy() textenc.Policy {
	return textenc.Policy{
		OpenAskUser:           c.OpenAskUser,
		OpenEncoding:          c.OpenEncoding,
		SavesUseKnownEncoding: c.SavesUseKnownEncoding,
		SavesAskUser:          c.SavesAskUser,
		SavesEncoding:         c.SavesEncoding,
	}
}
