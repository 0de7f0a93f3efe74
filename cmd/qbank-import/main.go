// Command qbank-import validates a question bank workbook and commits the
// accepted rows to the database.
//
// Flags:
//
//	--file           workbook to import (required)
//	--accepted-out   write accepted rows to this .xlsx report
//	--rejected-out   write rejected rows, with reasons, to this .xlsx report
//	--validate-only  validate and write reports without touching the database
//	--dry-run        resolve the catalog and map rows without writing
//	--import-config  path to import YAML config file
//	--migrate        apply pending migrations before importing
//	--history N      print the N most recent committed runs and exit
//
// The summary is printed to stdout as JSON.
// Exit codes: 0 = success, 1 = error or failed rows.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/catalog"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/importrun"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/question"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/xlsx"
	"github.com/wassimTlili/med-q-main-sub002/internal/app"
	"github.com/wassimTlili/med-q-main-sub002/internal/app/importer"
	"github.com/wassimTlili/med-q-main-sub002/internal/config"
	"github.com/wassimTlili/med-q-main-sub002/internal/ingest"
	catalogsvc "github.com/wassimTlili/med-q-main-sub002/internal/service/catalog"
	"github.com/wassimTlili/med-q-main-sub002/migrations"
	"github.com/wassimTlili/med-q-main-sub002/pkg/ctxutil"
)

type validationSummary struct {
	Total    int                   `json:"total"`
	Accepted int                   `json:"accepted"`
	Rejected int                   `json:"rejected"`
	Reasons  map[ingest.Reason]int `json:"reasons,omitempty"`
	Errors   []string              `json:"errors,omitempty"`
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	fileFlag := flag.String("file", "", "workbook to import")
	acceptedOutFlag := flag.String("accepted-out", "", "write accepted rows to this .xlsx file")
	rejectedOutFlag := flag.String("rejected-out", "", "write rejected rows to this .xlsx file")
	validateOnlyFlag := flag.Bool("validate-only", false, "validate without touching the database")
	dryRunFlag := flag.Bool("dry-run", false, "resolve and map rows without writing")
	importConfigFlag := flag.String("import-config", "", "path to import YAML config file")
	migrateFlag := flag.Bool("migrate", false, "apply pending migrations first")
	historyFlag := flag.Int("history", 0, "print the N most recent runs and exit")
	flag.Parse()

	if *historyFlag > 0 {
		return printHistory(*historyFlag)
	}

	if *fileFlag == "" {
		flag.Usage()
		return 1
	}

	var (
		appCfg *config.Config
		logger *slog.Logger
	)
	if *validateOnlyFlag {
		logCfg, err := config.LoadLog()
		if err != nil {
			log.Printf("load log config: %v", err)
			return 1
		}
		logger = app.NewLogger(logCfg)
	} else {
		var err error
		appCfg, err = config.Load()
		if err != nil {
			log.Printf("load app config: %v", err)
			return 1
		}
		logger = app.NewLogger(appCfg.Log)
	}

	logger.Info("starting qbank-import",
		slog.String("version", app.BuildVersion()),
		slog.String("file", *fileFlag),
		slog.Bool("validate_only", *validateOnlyFlag),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRunID(ctx, uuid.New())

	report, err := validateFile(ctx, logger, *fileFlag)
	if err != nil {
		logger.Error("validate workbook", slog.String("file", *fileFlag), slog.String("error", err.Error()))
		return 1
	}

	if err := writeReport(*acceptedOutFlag, report, ingest.ExportAccepted); err != nil {
		logger.Error("write accepted report", slog.String("error", err.Error()))
		return 1
	}
	if err := writeReport(*rejectedOutFlag, report, ingest.ExportRejected); err != nil {
		logger.Error("write rejected report", slog.String("error", err.Error()))
		return 1
	}

	if *validateOnlyFlag {
		printJSON(validationSummary{
			Total:    report.Total(),
			Accepted: len(report.Accepted),
			Rejected: len(report.Rejected),
			Reasons:  report.ReasonCounts(),
			Errors:   report.RejectionMessages(),
		})
		return 0
	}

	importCfg, err := importer.LoadConfig(*importConfigFlag)
	if err != nil {
		logger.Error("load import config", slog.String("error", err.Error()))
		return 1
	}
	if *dryRunFlag {
		importCfg.DryRun = true
	}

	if *migrateFlag {
		n, err := postgres.Migrate(ctx, appCfg.Database.DSN, migrations.FS)
		if err != nil {
			logger.Error("apply migrations", slog.String("error", err.Error()))
			return 1
		}
		logger.Info("migrations applied", slog.Int("count", n))
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	imp := importer.New(
		logger,
		catalogsvc.NewService(logger, catalog.New(pool)),
		question.New(pool),
		postgres.NewTxManager(pool),
		importrun.New(pool),
		*importCfg,
	)

	result, err := imp.Run(ctx, filepath.Base(*fileFlag), report)
	printJSON(result)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		return 1
	}
	if result.Failed > 0 {
		logger.Warn("import completed with failed rows", slog.Int("failed", result.Failed))
		return 1
	}
	return 0
}

func printHistory(limit int) int {
	appCfg, err := config.Load()
	if err != nil {
		log.Printf("load app config: %v", err)
		return 1
	}
	logger := app.NewLogger(appCfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	runs, err := importrun.New(pool).ListRecent(ctx, limit)
	if err != nil {
		logger.Error("list import runs", slog.String("error", err.Error()))
		return 1
	}
	printJSON(runs)
	return 0
}

func validateFile(ctx context.Context, logger *slog.Logger, path string) (*ingest.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ingest.ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	orch := ingest.NewOrchestrator(logger, openXLSX)
	return orch.ValidateReader(ctx, f)
}

func openXLSX(r io.Reader) (ingest.Workbook, error) {
	wb, err := xlsx.Open(r)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

func writeReport(path string, report *ingest.Report, mode ingest.ExportMode) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	table := ingest.ExportTable(report, mode)
	if err := xlsx.WriteTable(f, table.Sheet, table.Header, table.Rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s report: %w", mode, err)
	}
	return f.Close()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode summary", slog.String("error", err.Error()))
	}
}
