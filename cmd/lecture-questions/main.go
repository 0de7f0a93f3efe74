// Command lecture-questions prints the display units of one or more
// lectures as JSON, in the order a student sees them.
//
// Flags:
//
//	--lecture      comma-separated lecture (course) IDs (required)
//	--concurrency  lectures loaded in parallel (default 4)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/question"
	"github.com/wassimTlili/med-q-main-sub002/internal/app"
	"github.com/wassimTlili/med-q-main-sub002/internal/config"
	"github.com/wassimTlili/med-q-main-sub002/internal/service/lecture"
)

func main() {
	os.Exit(run())
}

func run() int {
	lectureFlag := flag.String("lecture", "", "comma-separated lecture IDs")
	concurrencyFlag := flag.Int("concurrency", 4, "lectures loaded in parallel")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Printf("load app config: %v", err)
		return 1
	}
	logger := app.NewLogger(appCfg.Log)
	logger.Debug("starting lecture-questions", slog.String("version", app.BuildVersion()))

	ids, err := parseIDs(*lectureFlag)
	if err != nil {
		logger.Error("parse --lecture", slog.String("error", err.Error()))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	svc := lecture.NewService(logger, question.New(pool), *concurrencyFlag)
	views, err := svc.LecturesUnits(ctx, ids)
	if err != nil {
		logger.Error("load lectures", slog.String("error", err.Error()))
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		logger.Error("encode lectures", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func parseIDs(raw string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("no lecture IDs given")
	}
	return ids, nil
}
