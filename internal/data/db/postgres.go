package db

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/domain/refdata"
	"github.com/cen-na/contrats-backend/internal/pkg/envutil"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// PostgresService owns the saisie database handle. The foncier geometry
// database is a separate, read-only handle (see NewFoncier).
type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func dsnFromEnv(prefix string) string {
	user := envutil.String(prefix+"_USER", "postgres")
	password := url.QueryEscape(envutil.String(prefix+"_PASSWORD", ""))
	host := envutil.String(prefix+"_HOST", "localhost")
	port := envutil.Int(prefix+"_PORT", 5432)
	name := envutil.String(prefix+"_NAME", "saisie")
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", user, password, host, port, name)
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(envutil.Int("DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(envutil.Int("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(envutil.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute))
	return db, nil
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	dsn := envutil.String("DATABASE_URL", "")
	if dsn == "" {
		dsn = dsnFromEnv("POSTGRES")
	}

	log.Info("Connecting to Postgres (saisie)...")
	db, err := open(dsn)
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

// NewFoncier opens the secondary database carrying the site geometry view.
// Falls back to the primary DSN when no dedicated settings are present, so
// single-database deployments keep working.
func NewFoncier(log *logger.Logger) (*gorm.DB, error) {
	dsn := envutil.String("FONCIER_DATABASE_URL", "")
	if dsn == "" && envutil.String("FONCIER_HOST", "") != "" {
		dsn = dsnFromEnv("FONCIER")
	}
	if dsn == "" {
		dsn = envutil.String("DATABASE_URL", "")
	}
	if dsn == "" {
		dsn = dsnFromEnv("POSTGRES")
	}
	log.Info("Connecting to Postgres (foncier)...")
	db, err := open(dsn)
	if err != nil {
		log.Error("Failed to connect to foncier Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to foncier postgres: %w", err)
	}
	return db, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating saisie tables...")
	err := s.db.AutoMigrate(
		&refdata.TypeContrat{},
		&refdata.TypeMilieu{},
		&refdata.TypeProduction{},
		&refdata.ModeProduction{},
		&refdata.TypeProduitFini{},
		&refdata.TypeCategorieJuridique{},
		&refdata.TypeActivitePrincipale{},
		&refdata.TypeTrancheEffectif{},

		&contrats.Societe{},
		&contrats.Agriculteur{},
		&contrats.Referent{},
		&contrats.Contrat{},
		&contrats.AgriculteurSociete{},
		&contrats.ContratSiteCen{},
		&contrats.TypeMilieuContrat{},
		&contrats.ProduitFiniContrat{},
		&contrats.TypeProductionSociete{},
		&contrats.CompteurSite{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
