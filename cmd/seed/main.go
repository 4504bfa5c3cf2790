// seed carga un CSV de stock al catálogo reutilizando la lógica del import
// masivo. El archivo esperado lleva cabecera y columnas separadas por ';':
//
//	name;categories;price;quantity
//
// donde categories es una lista separada por '|'. Los CSV exportados desde
// herramientas de escritorio suelen venir en Windows-1252; se decodifica
// siempre con ese charset (el ASCII puro pasa sin cambios).
//
// Uso: go run ./cmd/seed -file stock.csv [-dry-run]
// Con -dry-run procesa contra un catálogo en memoria y solo reporta; sin él,
// carga todo-o-nada dentro de una transacción PostgreSQL.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jortega/catalogo-api/internal/application/dto"
	"github.com/jortega/catalogo-api/internal/application/usecase"
	"github.com/jortega/catalogo-api/internal/domain/repository"
	"github.com/jortega/catalogo-api/internal/infrastructure/memory"
	"github.com/jortega/catalogo-api/internal/infrastructure/postgres"
	"github.com/jortega/catalogo-api/pkg/config"
	"github.com/jortega/catalogo-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	file := flag.String("file", "stock.csv", "ruta del CSV de stock")
	dryRun := flag.Bool("dry-run", false, "procesar en memoria sin tocar la base de datos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	records, err := readStockCSV(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer CSV de stock")
	}
	log.Info().Int("records", len(records)).Str("file", *file).Msg("CSV leído")

	if *dryRun {
		store := memory.NewStore()
		uc := usecase.NewProductUseCase(store.Products(), store.Categories())
		if err := uc.StockImport(records); err != nil {
			log.Fatal().Err(err).Msg("import en memoria")
		}
		products, _ := store.Products().List()
		categories, _ := store.Categories().List()
		log.Info().
			Int("products", len(products)).
			Int("categories", len(categories)).
			Msg("dry-run completado, nada persistido")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Todo-o-nada: si un registro falla, se revierte la carga completa.
	runner := postgres.NewTxRunner(pool)
	err = runner.Run(ctx, func(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
		uc := usecase.NewProductUseCase(productRepo, categoryRepo)
		return uc.StockImport(records)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("import de stock")
	}
	log.Info().Int("records", len(records)).Msg("import de stock completado")
}

// readStockCSV lee y decodifica el CSV (Windows-1252) a registros de stock.
func readStockCSV(path string) ([]dto.StockRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV vacío")
	}

	records := make([]dto.StockRecord, 0, len(rows)-1)
	for i, row := range rows[1:] { // saltar cabecera
		line := i + 2
		if len(row) < 4 {
			return nil, fmt.Errorf("línea %d: se esperan 4 columnas, hay %d", line, len(row))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, row[2])
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, row[3])
		}
		var categories []string
		for _, c := range strings.Split(row[1], "|") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
		records = append(records, dto.StockRecord{
			Name:       strings.TrimSpace(row[0]),
			Categories: categories,
			Price:      price,
			Quantity:   quantity,
		})
	}
	return records, nil
}
