package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generate_sample_foods writes a gzipped NDJSON seed file for SEED_FILE.
func main() {
	out := flag.String("out", "data/seeds/foods.ndjson.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	foods := []map[string]any{
		{"name": "Milk", "category": "Dairy", "quantity": 1, "unit": "l", "expiryDate": "2026-10-21"},
		{"name": "Eggs", "category": "Dairy", "quantity": 12, "expiryDate": "2026-11-02"},
		{"name": "Cheddar", "category": "Dairy", "quantity": 200, "unit": "g", "expiryDate": "2026-12-01"},
		{"name": "Spinach", "category": "Vegetables", "quantity": 1, "unit": "bag", "expiryDate": "2026-10-17"},
		{"name": "Chicken thighs", "category": "Meat", "quantity": 6, "expiryDate": "2026-10-16", "notes": "freeze if unused"},
		{"name": "Orange juice", "category": "Drinks", "quantity": 1, "unit": "l", "expiryDate": "2026-10-25"},
	}

	if err := writeSeedFile(*out, foods); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d items\n", *out, len(foods))
}

func writeSeedFile(filePath string, foods []map[string]any) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, food := range foods {
		if err := enc.Encode(food); err != nil {
			return fmt.Errorf("failed to write item: %w", err)
		}
	}

	return nil
}
