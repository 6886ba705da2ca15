package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const DefaultAppEnv = "dev"

// EnvService loads .env and then .env.<APP_ENV> from a directory. Variables
// already set in the process win over .env; .env.<APP_ENV> overrides both.
type EnvService struct {
	appEnv string
	loaded []string
}

func NewEnvService(dir string) (*EnvService, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = DefaultAppEnv
	}

	e := &EnvService{appEnv: appEnv}

	if err := e.load(filepath.Join(dir, ".env"), godotenv.Load); err != nil {
		return nil, err
	}
	if err := e.load(filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv)), godotenv.Overload); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *EnvService) load(path string, loader func(...string) error) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := loader(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	e.loaded = append(e.loaded, path)
	return nil
}

func (e *EnvService) AppEnv() string {
	return e.appEnv
}

// Loaded lists the files that were read, in load order.
func (e *EnvService) Loaded() []string {
	return e.loaded
}
