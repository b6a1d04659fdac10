// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/onexAdditional/dtwindex/config"
)

// Each CLI invocation is a fresh process, so the warping band ratio a
// prior `set-band-ratio` call chose has to live somewhere between runs;
// it is kept as a single float in a dotfile under the user's config
// directory and read back as the default for every command that builds
// or queries a group index.
func bandRatioConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("dtwindex: resolve config dir: %w", err)
	}

	return filepath.Join(dir, "dtwindex", "band-ratio"), nil
}

func loadBandRatio() float64 {
	path, err := bandRatioConfigPath()
	if err != nil {
		return config.DefaultWarpingBandRatio
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config.DefaultWarpingBandRatio
	}

	ratio, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return config.DefaultWarpingBandRatio
	}

	return ratio
}

func saveBandRatio(ratio float64) error {
	path, err := bandRatioConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dtwindex: create config dir: %w", err)
	}

	return os.WriteFile(path, []byte(strconv.FormatFloat(ratio, 'g', -1, 64)+"\n"), 0o644)
}
