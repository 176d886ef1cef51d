// Command seed loads customer and product documents from JSON files and
// computes the cached sales-statistics document from a sales-report CSV.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/retainworks/retainbot/src/api/data"
	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/retainworks/retainbot/src/store"
)

var (
	customersFlag = flag.String("customers", "", "Path to customers.json (array of customer documents)")
	productsFlag  = flag.String("products", "", "Path to products.json (array of product documents)")
	salesFlag     = flag.String("sales", "", "Path to sales report CSV (Style, Status, Qty, Amount columns)")
	dsnFlag       = flag.String("dsn", os.Getenv("MYSQL_DSN"), "MySQL DSN")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *dsnFlag == "" {
		log.Fatal("seed: -dsn or MYSQL_DSN required")
	}
	db := data.MustMySQL(*dsnFlag)
	if err := store.Migrate(db); err != nil {
		log.Fatalf("seed: migrate: %v", err)
	}
	docs := store.NewMySQL(db)
	ctx := context.Background()

	if *customersFlag != "" {
		n, err := seedCustomers(ctx, docs, *customersFlag)
		if err != nil {
			log.Fatalf("seed: customers: %v", err)
		}
		log.Printf("seed: upserted %d customers", n)
	}
	if *productsFlag != "" {
		n, err := seedProducts(ctx, docs, *productsFlag)
		if err != nil {
			log.Fatalf("seed: products: %v", err)
		}
		log.Printf("seed: upserted %d products", n)
	}
	if *salesFlag != "" {
		stats, err := computeSalesStats(*salesFlag)
		if err != nil {
			log.Fatalf("seed: sales: %v", err)
		}
		if err := docs.Upsert(ctx, store.SalesBucket, store.SalesStatsKey, stats); err != nil {
			log.Fatalf("seed: sales: %v", err)
		}
		log.Printf("seed: cached stats for %d styles", len(stats.StyleStatusCount))
	}
}

func seedCustomers(ctx context.Context, docs store.Store, path string) (int, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var customers []types.CustomerRecord
	if err := json.Unmarshal(body, &customers); err != nil {
		return 0, err
	}
	for _, c := range customers {
		if c.CustomerID == "" {
			return 0, fmt.Errorf("customer with empty customer_id")
		}
		if err := docs.Upsert(ctx, store.CustomersBucket, c.CustomerID, &c); err != nil {
			return 0, err
		}
	}
	return len(customers), nil
}

func seedProducts(ctx context.Context, docs store.Store, path string) (int, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var products []types.ProductRecord
	if err := json.Unmarshal(body, &products); err != nil {
		return 0, err
	}
	for _, p := range products {
		if p.Style == "" {
			return 0, fmt.Errorf("product with empty style")
		}
		if err := docs.Upsert(ctx, store.ProductsBucket, p.Style, &p); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}

// computeSalesStats aggregates the sales report into the per-style status
// counts the retention prompt quotes.
func computeSalesStats(path string) (*types.SalesStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Style", "Status", "Qty", "Amount"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV missing %q column", required)
		}
	}

	stats := &types.SalesStats{StyleStatusCount: map[string]types.StyleStats{}}
	var sum float64
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", stats.EntryCount+2, err)
		}
		qty, _ := strconv.ParseFloat(row[col["Qty"]], 64)
		amount, _ := strconv.ParseFloat(row[col["Amount"]], 64)
		sale := qty * amount

		sum += sale
		stats.EntryCount++
		if first || sale < stats.MinSales {
			stats.MinSales = sale
		}
		if first || sale > stats.MaxSales {
			stats.MaxSales = sale
		}
		first = false

		style, status := row[col["Style"]], row[col["Status"]]
		st := stats.StyleStatusCount[style]
		if st.StatusCounts == nil {
			st.StatusCounts = map[string]int{}
		}
		st.TotalCount++
		st.StatusCounts[status]++
		stats.StyleStatusCount[style] = st
	}
	stats.TotalSales = sum
	if stats.EntryCount > 0 {
		stats.AverageSales = sum / float64(stats.EntryCount)
	}
	return stats, nil
}
