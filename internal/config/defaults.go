package config

import (
	_ "embed"
)

//go:embed defaults/towers.yaml
var defaultTowersYAML []byte

//go:embed defaults/rituals.yaml
var defaultRitualsYAML []byte
