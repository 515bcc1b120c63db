// internal/compose/compose.go

// Package compose writes the docker-compose.yml that runs Hudu next to the
// generated env file.
package compose

import (
	"fmt"
	"strings"

	"github.com/pankajbeniwal/hudu-setup/internal/config"
	"gopkg.in/yaml.v3"
)

const (
	FileName = "docker-compose.yml"

	appImage      = "hududocker/hudu:latest"
	postgresImage = "postgres:13"
	redisImage    = "redis:6-alpine"
	swagImage     = "lscr.io/linuxserver/swag:latest"

	uploadsVolume = "hudu_storage:/var/www/hudu2/storage"
)

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]interface{}    `yaml:"volumes,omitempty"`
}

type composeService struct {
	Image     string   `yaml:"image"`
	EnvFile   []string `yaml:"env_file,omitempty"`
	Ports     []string `yaml:"ports,omitempty"`
	Volumes   []string `yaml:"volumes,omitempty"`
	CapAdd    []string `yaml:"cap_add,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty"`
	Restart   string   `yaml:"restart"`
}

// Generate returns the compose file for cfg. envFile is the env file path
// as seen from the compose file's directory.
func Generate(cfg config.Config, envFile string) ([]byte, error) {
	if envFile == "" {
		envFile = ".env"
	}
	env := []string{envFile}

	cf := composeFile{
		Services: make(map[string]composeService),
		Volumes:  make(map[string]interface{}),
	}

	app := composeService{
		Image:     appImage,
		EnvFile:   env,
		DependsOn: []string{"db", "redis"},
		Restart:   "unless-stopped",
	}
	if cfg.Storage != config.StorageS3 {
		app.Volumes = []string{uploadsVolume}
	}
	cf.Services["app"] = app

	cf.Services["db"] = composeService{
		Image:   postgresImage,
		EnvFile: env,
		Volumes: []string{"postgres_data:/var/lib/postgresql/data"},
		Restart: "unless-stopped",
	}
	cf.Services["redis"] = composeService{
		Image:   redisImage,
		Volumes: []string{"redis_data:/data"},
		Restart: "unless-stopped",
	}
	cf.Services["swag"] = composeService{
		Image:     swagImage,
		EnvFile:   env,
		Ports:     []string{"80:80", "443:443"},
		Volumes:   []string{"./swag:/config"},
		CapAdd:    []string{"NET_ADMIN"},
		DependsOn: []string{"app"},
		Restart:   "unless-stopped",
	}

	for _, svc := range cf.Services {
		for _, v := range svc.Volumes {
			volName := strings.Split(v, ":")[0]
			if strings.HasPrefix(volName, ".") || strings.HasPrefix(volName, "/") {
				continue // bind mount
			}
			cf.Volumes[volName] = nil
		}
	}
	if len(cf.Volumes) == 0 {
		cf.Volumes = nil
	}

	data, err := yaml.Marshal(cf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate compose file: %w", err)
	}
	return data, nil
}
