package additive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

//go:embed data/codex_additives.json
var embeddedDatabase []byte

var gzipMagic = []byte{0x1f, 0x8b}

// Decode reads a database from r. Gzipped input is detected by its magic bytes.
func Decode(r io.Reader) (*Database, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if head, err := br.Peek(2); err == nil && bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var db Database
	if err := json.NewDecoder(src).Decode(&db); err != nil {
		return nil, fmt.Errorf("failed to decode additive database: %w", err)
	}
	if len(db.Additives) == 0 {
		return nil, fmt.Errorf("additive database has no entries")
	}
	return &db, nil
}

// embeddedLoader returns the database compiled into the binary.
type embeddedLoader struct{}

// NewEmbeddedLoader returns a Loader that ignores the path and serves the built-in Codex list.
func NewEmbeddedLoader() Loader {
	return embeddedLoader{}
}

func (embeddedLoader) Load(_ context.Context, _ string) (*Database, error) {
	return Decode(bytes.NewReader(embeddedDatabase))
}

// fileLoader implements Loader for database files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based additive loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "additive-loader").Logger(),
	}
}

// Load reads a plain or gzipped JSON database file.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Database, error) {
	l.logger.Info().Str("file", filePath).Msg("loading additive database")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open additive database")
		return nil, fmt.Errorf("failed to open additive database %s: %w", filePath, err)
	}
	defer file.Close()

	db, err := Decode(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read additive database")
		return nil, fmt.Errorf("failed to read additive database %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("entries", len(db.Additives)).
		Msg("additive database loaded successfully")

	return db, nil
}
