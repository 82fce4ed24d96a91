package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	View struct {
		Sort  string `yaml:"sort"`
		Order string `yaml:"order"`
	} `yaml:"view"`

	Storage struct {
		WarnBytes int `yaml:"warn_bytes"`
	} `yaml:"storage"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
