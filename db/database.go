package db

import (
	"context"
	"fmt"
	"net/url"

	"juris_dashboard_go/models"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func gormConfig(environment string) *gorm.Config {
	// Determine log level based on environment
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

// Initialize opens the local SQLite source with WAL mode for concurrency
func Initialize(dbPath string, environment string) (*gorm.DB, error) {
	dsn := dbPath + "?_journal_mode=WAL"

	conn, err := gorm.Open(sqlite.Open(dsn), gormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// InitializeTurso opens a remote libSQL database through the libsql driver
func InitializeTurso(databaseURL, authToken, environment string) (*gorm.DB, error) {
	dsn := databaseURL
	if authToken != "" {
		u, err := url.Parse(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid turso url: %w", err)
		}
		q := u.Query()
		q.Set("authToken", authToken)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	conn, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "libsql",
		DSN:        dsn,
	}), gormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to turso: %w", err)
	}
	return conn, nil
}

// AutoMigrate creates the raw process table when missing
func AutoMigrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := conn.AutoMigrate(&models.RawProcessRow{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ReadRawRecords reads every scraped row, oldest first, as raw records
func ReadRawRecords(ctx context.Context, conn *gorm.DB) ([]models.RawRecord, error) {
	if conn == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var rows []models.RawProcessRow
	if err := conn.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read processos: %w", err)
	}

	raws := make([]models.RawRecord, len(rows))
	for i, row := range rows {
		raws[i] = row.ToRaw()
	}
	return raws, nil
}

// UpsertRawRows inserts rows, replacing the payload of already known case numbers
func UpsertRawRows(ctx context.Context, conn *gorm.DB, rows []models.RawProcessRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_processo"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"link_processo",
			"data_extracao_dados",
			"partes_principais",
			"detalhes_capa_processual",
			"ultimo_movimento_processo",
			"linha_tempo_otimizada",
			"analise_llm",
		}),
	}).CreateInBatches(rows, 100)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to upsert processos: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Close closes the database connection
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
