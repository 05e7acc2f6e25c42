package cmd

import (
	"os"

	"github.com/salmonumbrella/filetree-cli/internal/config"
)

var (
	envGet            = os.Getenv
	readDefaultConfig = config.ReadConfig
)
