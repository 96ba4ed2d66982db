package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/infrastructure/monitoring"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
)

const backendName = "file"

// CustomerStore keeps the whole collection in one JSON document. Nothing is
// cached between calls and no lock spans a read followed by a write.
type CustomerStore struct {
	path   string
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerStore)(nil)

func NewCustomerStore(path string, logger *slog.Logger) *CustomerStore {
	if path == "" {
		panic("data file path cannot be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerStore, using default stderr handler")
	}
	return &CustomerStore{
		path:   path,
		logger: logger.With("component", "FileCustomerStore", "path", path),
	}
}

func (s *CustomerStore) Path() string {
	return s.path
}

// Initialize creates the data directory and, when the file is missing, writes
// the seed collection. Failures are logged and not returned.
func (s *CustomerStore) Initialize(ctx context.Context) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.ErrorContext(ctx, "Error creating data directory", slog.Any("error", err))
		return
	}

	if _, err := os.Stat(s.path); err == nil {
		s.logger.InfoContext(ctx, "Data file already present")
		return
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.logger.ErrorContext(ctx, "Error checking data file", slog.Any("error", err))
		return
	}

	if err := s.WriteAll(ctx, customer.SeedCustomers()); err != nil {
		s.logger.ErrorContext(ctx, "Error initializing data", slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "Sample data initialized")
}

// ReadAll never fails: a missing or malformed file yields an empty collection.
func (s *CustomerStore) ReadAll(ctx context.Context) ([]*customer.Customer, error) {
	start := time.Now()
	customers, err := s.read()
	monitoring.RecordStoreOperation(backendName, "read_all", err, time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error reading data", slog.Any("error", err))
		return []*customer.Customer{}, nil
	}
	return customers, nil
}

func (s *CustomerStore) read() ([]*customer.Customer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var customers []*customer.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if customers == nil {
		customers = []*customer.Customer{}
	}
	return customers, nil
}

// WriteAll replaces the file contents. The document is written to a temporary
// file in the same directory and renamed over the original.
func (s *CustomerStore) WriteAll(ctx context.Context, customers []*customer.Customer) error {
	start := time.Now()
	err := s.write(customers)
	monitoring.RecordStoreOperation(backendName, "write_all", err, time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "Error writing data", slog.Any("error", err))
		return apperrors.WrapStorageError(err, "failed to write customer collection")
	}
	return nil
}

func (s *CustomerStore) write(customers []*customer.Customer) error {
	if customers == nil {
		customers = []*customer.Customer{}
	}
	data, err := encodeCollection(customers)
	if err != nil {
		return fmt.Errorf("failed to encode customers: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// encodeCollection indents with two spaces and leaves <, > and & unescaped.
// The file carries no trailing newline.
func encodeCollection(customers []*customer.Customer) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(customers); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
