// Aplica as migrações SQL de migrations/ no banco configurado.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down 1
package main

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/consertapro/conserta-api/pkg/config"
	"github.com/consertapro/conserta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// O driver pgx/v5 do migrate espera o scheme pgx5://.
	dsn := strings.Replace(cfg.DB.ConnectionString(), "postgres://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrações")
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, _ = strconv.Atoi(os.Args[2])
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("consultar versão")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado das migrações")
		return
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconhecido (up | down [n] | version)")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("aplicar migrações")
	}
	log.Info().Str("cmd", cmd).Msg("migrações aplicadas")
}
