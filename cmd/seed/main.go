// seed genera un script SQL para poblar categorías e ítems a partir de un CSV.
//
// Uso: go run ./cmd/seed [-latin1] [ruta/items.csv]
// Por defecto lee items.csv del directorio actual.
// Columnas: name,quantity,category,status,sku,location,supplier,reorder_threshold
// Escribe: internal/infrastructure/postgres/seed_items.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

type seedItem struct {
	name      string
	quantity  int
	category  string
	status    entity.ItemStatus
	sku       string
	location  string
	supplier  string
	threshold *int
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 (exportes de hoja de cálculo)")
	flag.Parse()

	csvPath := "items.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := parseItems(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seed_items.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	categories := writeSQL(out, items)
	fmt.Printf("Generado %s: %d categorías, %d ítems\n", outPath, categories, len(items))
}

// parseItems lee el CSV con cabecera. El estado se deriva igual que en la API.
func parseItems(r io.Reader) ([]seedItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "quantity", "category"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var items []seedItem
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		it := seedItem{
			name:     get(rec, "name"),
			category: get(rec, "category"),
			sku:      get(rec, "sku"),
			location: get(rec, "location"),
			supplier: get(rec, "supplier"),
		}
		if it.name == "" || it.category == "" {
			return nil, fmt.Errorf("línea %d: name y category son obligatorios", line)
		}
		it.quantity, err = strconv.Atoi(get(rec, "quantity"))
		if err != nil || it.quantity < 0 {
			return nil, fmt.Errorf("línea %d: quantity inválida", line)
		}
		if v := get(rec, "reorder_threshold"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: reorder_threshold inválido", line)
			}
			it.threshold = &n
		}
		requested := entity.ItemStatus(get(rec, "status"))
		if requested != "" && !requested.Valid() {
			return nil, fmt.Errorf("línea %d: status %q desconocido", line, requested)
		}
		it.status = entity.ResolveStatus(requested, it.quantity, it.threshold)
		items = append(items, it)
	}
	return items, nil
}

// writeSQL escribe categorías (una por nombre, sin distinguir mayúsculas) e ítems. Devuelve el número de categorías.
func writeSQL(out io.Writer, items []seedItem) int {
	names := make(map[string]string)
	for _, it := range items {
		key := strings.ToLower(it.category)
		if _, ok := names[key]; !ok {
			names[key] = it.category
		}
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprint(out, "-- Categorías e ítems iniciales\n-- Generado por cmd/seed\n\n")
	fmt.Fprint(out, "-- 1. Categorías\n")
	for _, k := range keys {
		fmt.Fprintf(out, "INSERT INTO categories (id, name) VALUES ('%s', '%s')\n", uuid.New(), escapeSQL(names[k]))
		fmt.Fprint(out, "ON CONFLICT DO NOTHING;\n")
	}

	fmt.Fprint(out, "\n-- 2. Ítems (categoría resuelta por nombre)\n")
	for _, it := range items {
		fmt.Fprint(out, "INSERT INTO inventory_items (id, name, quantity, category_id, category, status, sku, location, supplier, reorder_threshold)\n")
		fmt.Fprintf(out, "SELECT '%s', '%s', %d, id, name, '%s', %s, %s, %s, %s FROM categories WHERE LOWER(name) = LOWER('%s');\n",
			uuid.New(), escapeSQL(it.name), it.quantity, it.status,
			sqlText(it.sku), sqlText(it.location), sqlText(it.supplier), sqlInt(it.threshold),
			escapeSQL(it.category))
	}
	return len(keys)
}

func sqlText(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func sqlInt(n *int) string {
	if n == nil {
		return "NULL"
	}
	return strconv.Itoa(*n)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
