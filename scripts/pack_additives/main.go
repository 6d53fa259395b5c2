package main

import (
	"bytes"
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"foodtruth/internal/additive"
)

// pack_additives validates an additive database and writes a gzipped copy
// suitable for ADDITIVES_PATH or upload to the S3 bucket.
func main() {
	src := flag.String("in", "internal/additive/data/codex_additives.json", "additive database JSON")
	dst := flag.String("out", "data/codex_additives.json.gz", "gzipped output file")
	flag.Parse()

	raw, err := os.ReadFile(*src)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *src, err)
	}

	db, err := additive.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("Invalid additive database %s: %v", *src, err)
	}

	if err := os.MkdirAll(filepath.Dir(*dst), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := writeGzip(*dst, raw); err != nil {
		log.Fatalf("Failed to create %s: %v", *dst, err)
	}

	fmt.Printf("Packed %d additives (%s %s) into %s\n",
		len(db.Additives), db.Metadata.Source, db.Metadata.Version, *dst)
}

func writeGzip(filePath string, data []byte) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := gzipWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	return gzipWriter.Close()
}
