package app

import (
	"github.com/cen-na/contrats-backend/internal/clients/sirene"
	"github.com/cen-na/contrats-backend/internal/pkg/envutil"
	"github.com/cen-na/contrats-backend/internal/services"
)

type Config struct {
	ListenAddr string
	Auth       services.AuthConfig
	Sirene     sirene.Config
}

func LoadConfig() Config {
	return Config{
		ListenAddr: envutil.String("LISTEN_ADDR", ":8080"),
		Auth:       services.AuthConfigFromEnv(),
		Sirene:     sirene.ConfigFromEnv(),
	}
}
