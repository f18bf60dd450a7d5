package main

import (
	"os"

	"github.com/elC0mpa/ecs-chargeback/service/config"
)

// LoadConfig reads the YAML file named by CONFIG_PATH, if any, then the
// environment overrides
func LoadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("CONFIG_PATH"))
}
