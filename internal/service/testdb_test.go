package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/provtrack/bidwatch/internal/db"
	"github.com/provtrack/bidwatch/internal/repository"
)

// newTestDB opens a throwaway SQLite database with the full schema.
// Foreign keys are switched on so constraint behavior matches Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "bidwatch.db") + "?_fk=1"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database))
	return database
}

func newServices(t *testing.T) (*ContractService, *EngineerService, *StatusService) {
	t.Helper()

	database := newTestDB(t)
	contracts := repository.NewContractRepository(database)
	engineers := repository.NewEngineerRepository(database)
	statuses := repository.NewStatusRepository(database)
	return NewContractService(contracts, engineers, statuses),
		NewEngineerService(engineers),
		NewStatusService(statuses)
}
