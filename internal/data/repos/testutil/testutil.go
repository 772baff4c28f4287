package testutil

import (
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	contratTypes "github.com/cen-na/contrats-backend/internal/domain/contrats"
	refTypes "github.com/cen-na/contrats-backend/internal/domain/refdata"
	siteTypes "github.com/cen-na/contrats-backend/internal/domain/sites"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a process-wide in-memory SQLite handle with the full schema
// migrated. Tests isolate themselves with Tx.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		db, dbErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if dbErr != nil {
			return
		}
		dbErr = autoMigrateAll(db)
	})
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

// Tx begins a transaction rolled back when the test finishes.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&refTypes.TypeContrat{},
		&refTypes.TypeMilieu{},
		&refTypes.TypeProduction{},
		&refTypes.ModeProduction{},
		&refTypes.TypeProduitFini{},
		&refTypes.TypeCategorieJuridique{},
		&refTypes.TypeActivitePrincipale{},
		&refTypes.TypeTrancheEffectif{},

		&contratTypes.Societe{},
		&contratTypes.Agriculteur{},
		&contratTypes.Referent{},
		&contratTypes.Contrat{},
		&contratTypes.AgriculteurSociete{},
		&contratTypes.ContratSiteCen{},
		&contratTypes.TypeMilieuContrat{},
		&contratTypes.ProduitFiniContrat{},
		&contratTypes.TypeProductionSociete{},
		&contratTypes.CompteurSite{},

		&siteTypes.VueSite{},
	)
}
