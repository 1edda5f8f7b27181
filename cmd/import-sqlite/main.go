package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"juris_dashboard_go/config"
	"juris_dashboard_go/db"
	"juris_dashboard_go/logging"
	"juris_dashboard_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	file := flag.String("file", cfg.UnimedDataURL, "JSON export with an array of health-insurance records")
	flag.Parse()

	logger := logging.New(cfg.Environment)
	defer logger.Sync() //nolint:errcheck

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.UsesTurso() {
		conn, err = db.InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	} else {
		conn, err = db.Initialize(cfg.DBPath, cfg.Environment)
	}
	if err != nil {
		logger.Fatalw("failed to open database", "error", err)
	}
	defer db.Close(conn) //nolint:errcheck

	if err := db.AutoMigrate(conn); err != nil {
		logger.Fatalw("failed to migrate", "error", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalw("failed to open export", "file", *file, "error", err)
	}
	defer f.Close()

	affected, skipped, err := importRecords(context.Background(), conn, f, logger)
	if err != nil {
		logger.Fatalw("import failed", "file", *file, "error", err)
	}
	logger.Infow("import finished", "file", *file, "rows", affected, "skipped", skipped)
}

// importRecords upserts every record of a JSON array into the processos
// table. Records that cannot become a row are skipped with a warning.
func importRecords(ctx context.Context, conn *gorm.DB, r io.Reader, logger *zap.SugaredLogger) (int64, int, error) {
	var raws []models.RawRecord
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return 0, 0, fmt.Errorf("failed to decode export: %w", err)
	}

	rows := make([]models.RawProcessRow, 0, len(raws))
	skipped := 0
	for i, raw := range raws {
		row, err := models.RawProcessRowFromRecord(raw)
		if err != nil {
			logger.Warnw("skipping record", "index", i, "error", err)
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	affected, err := db.UpsertRawRows(ctx, conn, rows)
	if err != nil {
		return 0, skipped, err
	}
	return affected, skipped, nil
}
