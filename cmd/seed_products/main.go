// seed_products genera un script SQL para poblar el catálogo de productos
// a partir de una exportación CSV de un POS legado (codificada en ISO-8859-1,
// separada por punto y coma: sku;nombre;precio;costo;iva;unidad).
//
// Uso: go run ./cmd/seed_products [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_products.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	sku, name, unit      string
	price, cost, taxRate decimal.Decimal
}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Las exportaciones del POS legado vienen en ISO-8859-1.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var rows []productRow
	seen := make(map[string]bool)
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue // encabezado
		}
		if len(rec) < 6 {
			fmt.Fprintf(os.Stderr, "Línea %d: se esperaban 6 columnas, hay %d; omitida\n", line, len(rec))
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: %v; omitida\n", line, err)
			continue
		}
		if seen[row.sku] {
			fmt.Fprintf(os.Stderr, "Línea %d: SKU %s repetido; omitida\n", line, row.sku)
			continue
		}
		seen[row.sku] = true
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No hay filas válidas que importar")
		os.Exit(1)
	}

	var sb strings.Builder
	sb.WriteString("-- Generado por cmd/seed_products. No editar a mano.\n")
	sb.WriteString("-- Catálogo de productos importado del POS legado.\n\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO products (id, sku, name, price, cost, tax_rate, unit_measure, reorder_point, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', %s, %s, %s, '%s', 0, NOW(), NOW())\n"+
				"ON CONFLICT (sku) DO NOTHING;\n",
			uuid.NewString(), sqlEscape(row.sku), sqlEscape(row.name),
			row.price, row.cost, row.taxRate, sqlEscape(row.unit),
		))
	}

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_products.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d productos)\n", outPath, len(rows))
}

func parseRow(rec []string) (productRow, error) {
	row := productRow{
		sku:  strings.TrimSpace(rec[0]),
		name: strings.TrimSpace(rec[1]),
		unit: strings.TrimSpace(rec[5]),
	}
	if row.sku == "" || row.name == "" {
		return row, fmt.Errorf("sku y nombre son obligatorios")
	}
	if row.unit == "" {
		row.unit = "unidad"
	}
	var err error
	if row.price, err = parseDecimal(rec[2]); err != nil {
		return row, fmt.Errorf("precio: %w", err)
	}
	if row.cost, err = parseDecimal(rec[3]); err != nil {
		return row, fmt.Errorf("costo: %w", err)
	}
	if row.taxRate, err = parseDecimal(rec[4]); err != nil {
		return row, fmt.Errorf("iva: %w", err)
	}
	if row.price.IsNegative() || row.cost.IsNegative() || row.taxRate.IsNegative() {
		return row, fmt.Errorf("valores negativos")
	}
	// El POS legado exporta el IVA en porcentaje (19); la base lo guarda
	// como fracción (0.19).
	if row.taxRate.GreaterThan(decimal.NewFromInt(1)) {
		row.taxRate = row.taxRate.Div(decimal.NewFromInt(100))
	}
	return row, nil
}

// parseDecimal acepta coma o punto como separador decimal.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
