package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envFilename = ".env"

// EnvParam lists the settings that can be overridden from the environment.
type EnvParam struct {
	ApiKey  string `env:"VEKIMOJI_API_KEY"`
	ApiPort int64  `env:"VEKIMOJI_API_PORT"`
	I2cBus  string `env:"VEKIMOJI_I2C_BUS"`
}

// loadEnvParam reads the optional .env file of the config folder, then the
// process environment. Variables already set in the environment win.
func loadEnvParam(configDir string) (EnvParam, error) {
	var envParam EnvParam

	err := godotenv.Load(filepath.Join(configDir, envFilename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return envParam, err
	}

	err = env.Parse(&envParam)
	return envParam, err
}

func (p *ServerParam) applyEnv(envParam EnvParam) {
	if envParam.ApiKey != "" {
		p.Api.ApiKey = envParam.ApiKey
	}
	if envParam.ApiPort != 0 {
		p.Api.Port = envParam.ApiPort
	}
	if envParam.I2cBus != "" {
		p.Display.I2cBus = envParam.I2cBus
	}
}
