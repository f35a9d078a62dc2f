// Command importer loads bulk historical channel exports into the gift
// store. Exports are JSON documents of broadcast messages; sale notices
// and floor updates are parsed positionally and inserted idempotently,
// so re-running an import never duplicates rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/prezix/telegram-gifts-parser/internal/config"
	"github.com/prezix/telegram-gifts-parser/internal/parse"
	"github.com/prezix/telegram-gifts-parser/internal/store"
	"github.com/prezix/telegram-gifts-parser/internal/version"
)

// importCounts summarizes one export file's ingestion.
type importCounts struct {
	Messages   int
	Parsed     int
	Inserted   int
	Duplicates int
	Skipped    int
}

func main() {
	configPath := flag.String("config", "configs/analyzer.local.yaml", "path to config file")
	giftsPath := flag.String("gifts", "", "path to the floor-update channel export (JSON)")
	salesPath := flag.String("sales", "", "path to the sale-notice channel export (JSON)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting importer",
		"version", version.Version,
		"config", *configPath,
	)

	if *giftsPath == "" && *salesPath == "" {
		logger.Error("nothing to import: pass -gifts and/or -sales")
		os.Exit(1)
	}

	cfg, err := config.LoadAnalyzer(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := store.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	// The two channel exports are independent; ingest them concurrently.
	g, gctx := errgroup.WithContext(ctx)

	var floorCounts, saleCounts importCounts
	if *giftsPath != "" {
		g.Go(func() error {
			var err error
			floorCounts, err = importFloors(gctx, st, *giftsPath, logger)
			return err
		})
	}
	if *salesPath != "" {
		g.Go(func() error {
			var err error
			saleCounts, err = importSales(gctx, st, *salesPath, logger)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	if *giftsPath != "" {
		logger.Info("floor import complete",
			"file", *giftsPath,
			"messages", floorCounts.Messages,
			"parsed", floorCounts.Parsed,
			"inserted", floorCounts.Inserted,
			"duplicates", floorCounts.Duplicates,
			"skipped", floorCounts.Skipped,
		)
	}
	if *salesPath != "" {
		logger.Info("sale import complete",
			"file", *salesPath,
			"messages", saleCounts.Messages,
			"parsed", saleCounts.Parsed,
			"inserted", saleCounts.Inserted,
			"duplicates", saleCounts.Duplicates,
			"skipped", saleCounts.Skipped,
		)
	}
}

// importFloors ingests a floor-update channel export.
func importFloors(ctx context.Context, st *store.Store, path string, logger *slog.Logger) (importCounts, error) {
	msgs, err := readExport(path)
	if err != nil {
		return importCounts{}, err
	}

	counts := importCounts{Messages: len(msgs)}
	for _, msg := range msgs {
		obs, ok := parse.ExportFloor(msg)
		if !ok {
			counts.Skipped++
			continue
		}
		counts.Parsed++

		inserted, err := st.InsertPriceObservation(ctx, obs)
		if err != nil {
			return counts, fmt.Errorf("insert price observation %q: %w", obs.ItemName, err)
		}
		if inserted {
			counts.Inserted++
		} else {
			counts.Duplicates++
			logger.Debug("duplicate price observation", "item", obs.ItemName)
		}
	}
	return counts, nil
}

// importSales ingests a sale-notice channel export.
func importSales(ctx context.Context, st *store.Store, path string, logger *slog.Logger) (importCounts, error) {
	msgs, err := readExport(path)
	if err != nil {
		return importCounts{}, err
	}

	counts := importCounts{Messages: len(msgs)}
	for _, msg := range msgs {
		obs, ok := parse.ExportSale(msg)
		if !ok {
			counts.Skipped++
			continue
		}
		counts.Parsed++

		inserted, err := st.InsertSaleObservation(ctx, obs)
		if err != nil {
			return counts, fmt.Errorf("insert sale observation %d: %w", obs.MessageID, err)
		}
		if inserted {
			counts.Inserted++
		} else {
			counts.Duplicates++
			logger.Debug("duplicate sale observation", "message_id", obs.MessageID)
		}
	}
	return counts, nil
}

// readExport reads and decodes one export document.
func readExport(path string) ([]parse.ExportMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	msgs, err := parse.ExportDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode export %s: %w", path, err)
	}
	return msgs, nil
}
