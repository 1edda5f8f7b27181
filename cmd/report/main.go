package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/db"
	"juris_dashboard_go/logging"
	"juris_dashboard_go/models"
	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type options struct {
	source string
	format string
	out    string
	filter string
	lang   string
	id     string
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.source, "source", cfg.DataSource, "data source: pgm, unimed or sqlite")
	flag.StringVar(&opts.format, "format", "summary", "output: summary, csv, xlsx or json")
	flag.StringVar(&opts.out, "out", "", "output file (default stdout)")
	flag.StringVar(&opts.filter, "filter", "", "filter as a query string, e.g. especialidade=cardiologia&urgencia_min=7")
	flag.StringVar(&opts.lang, "lang", "pt", "language of headers and labels")
	flag.StringVar(&opts.id, "id", "", "record id, required for -format json")
	flag.Parse()

	logger := logging.New(cfg.Environment)
	defer logger.Sync() //nolint:errcheck

	if err := run(context.Background(), cfg, opts, logger); err != nil {
		logger.Errorw("report failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.SugaredLogger) error {
	if err := i18n.Load(); err != nil {
		return err
	}
	query, err := url.ParseQuery(opts.filter)
	if err != nil {
		return fmt.Errorf("invalid -filter: %w", err)
	}

	loaderDB := openSource(cfg, opts.source, logger)
	defer db.Close(loaderDB) //nolint:errcheck

	loader := services.NewLoader(services.LoaderConfig{
		PGMLocation:    cfg.PGMDataURL,
		UnimedLocation: cfg.UnimedDataURL,
		DB:             loaderDB,
		FetchTimeout:   time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		Seed:           cfg.RandomSeed,
	}, services.NewNormalizer(
		services.WithLogger(logger),
		services.WithSeed(cfg.RandomSeed),
		services.WithStrict(cfg.StrictNormalization),
	), logger)

	col, err := loader.Load(ctx, models.DataSource(opts.source))
	if err != nil {
		return err
	}
	if col.Fallback {
		logger.Warnw("source unavailable, report uses mock data", "source", col.Source, "reason", col.FallbackReason)
	}

	ctx = i18n.WithLocale(ctx, i18n.Normalize(opts.lang))
	records := services.ApplyFilters(col.Records, models.FilterStateFromQuery(query))

	var buf bytes.Buffer
	if err := render(ctx, &buf, opts, col, records); err != nil {
		return err
	}

	if opts.out == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	logger.Infow("report written", "file", opts.out, "format", opts.format, "records", len(records))
	return nil
}

// render writes the collection in the requested format. KPIs cover the full
// collection while the list and the alerts follow the filter.
func render(ctx context.Context, w io.Writer, opts options, col services.Collection, records []models.CaseRecord) error {
	switch opts.format {
	case "summary":
		return writeSummary(ctx, w, col, records)
	case "csv":
		return services.WriteCasesCSV(ctx, w, records)
	case "xlsx":
		buf, err := services.BuildWorkbook(ctx, records, col.KPIs, services.AlertsForRecords(col.Alerts, records))
		if err != nil {
			return err
		}
		_, err = w.Write(buf.Bytes())
		return err
	case "json":
		r, ok := col.Get(opts.id)
		if !ok {
			return fmt.Errorf("%w: %q", services.ErrRecordNotFound, opts.id)
		}
		data, err := services.ExportRecordJSON(r)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unknown format %q", opts.format)
}

func writeSummary(ctx context.Context, w io.Writer, col services.Collection, records []models.CaseRecord) error {
	k := col.KPIs
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", i18n.T(ctx, "export.kpis.metric"), i18n.T(ctx, "export.kpis.value"))
	fmt.Fprintf(tw, "%s\t%d\n", i18n.T(ctx, "export.kpis.total"), k.TotalProcessos)
	fmt.Fprintf(tw, "%s\t%d\n", i18n.T(ctx, "export.kpis.active"), k.ProcessosAtivos)
	fmt.Fprintf(tw, "%s\t%.2f\n", i18n.T(ctx, "export.kpis.exposure"), k.ExposicaoTotal)
	fmt.Fprintf(tw, "%s\t%d\n", i18n.T(ctx, "export.kpis.escalation"), k.CasosEscalacaoExecutiva)
	fmt.Fprintf(tw, "%s\t%d\n", i18n.T(ctx, "export.kpis.penalties"), k.MultasAtivas)
	fmt.Fprintf(tw, "%s\t%d\n", i18n.T(ctx, "export.kpis.avg_days"), k.TempoMedioTramitacao)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		i18n.T(ctx, "export.alerts.severity"),
		i18n.T(ctx, "export.alerts.case"),
		i18n.T(ctx, "export.alerts.due_days"),
		i18n.T(ctx, "export.alerts.message"),
	)
	for _, a := range services.AlertsForRecords(col.Alerts, records) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			i18n.T(ctx, "alerts.severity."+string(a.Severidade)),
			a.Processo,
			a.PrazoAcao,
			a.Mensagem,
		)
	}
	return tw.Flush()
}

// openSource connects to the database only for the sqlite source
func openSource(cfg *config.Config, source string, logger *zap.SugaredLogger) *gorm.DB {
	if source != string(models.SourceSQLite) {
		return nil
	}
	var (
		conn *gorm.DB
		err  error
	)
	if cfg.UsesTurso() {
		conn, err = db.InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, "production")
	} else {
		conn, err = db.Initialize(cfg.DBPath, "production")
	}
	if err != nil {
		logger.Warnw("database unavailable", "error", err)
		return nil
	}
	return conn
}
