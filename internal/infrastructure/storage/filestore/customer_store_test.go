package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/domain/customer"
	"github.com/arwebdeveloper/credit-risk-analytics-server/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestStore(t *testing.T) *CustomerStore {
	t.Helper()
	return NewCustomerStore(filepath.Join(t.TempDir(), "data", "customers.json"), testLogger)
}

func assertSameCollection(t *testing.T, want, got []*customer.Customer) {
	t.Helper()
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestInitializeWritesSeedWhenFileMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Initialize(ctx)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"customerId\": \"CUST1001\",\n"), "file should be indented with two spaces")
	assert.False(t, strings.HasSuffix(string(data), "\n"))

	customers, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 5)
	for i, id := range []string{"CUST1001", "CUST1002", "CUST1003", "CUST1004", "CUST1005"} {
		assert.Equal(t, id, customers[i].CustomerID)
	}
	assertSameCollection(t, customer.SeedCustomers(), customers)
}

func TestInitializeKeepsExistingFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`[{"customerId":"X1","status":"Review"}]`), 0o644))

	store.Initialize(ctx)

	customers, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "X1", customers[0].CustomerID)
}

func TestInitializeSwallowsErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	store := NewCustomerStore(filepath.Join(blocker, "customers.json"), testLogger)

	assert.NotPanics(t, func() { store.Initialize(context.Background()) })

	customers, err := store.ReadAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, customers)
}

func TestReadAllDegradesToEmptyCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		store := newTestStore(t)
		customers, err := store.ReadAll(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, customers)
		assert.Empty(t, customers)
	})

	t.Run("malformed file", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
		require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

		customers, err := store.ReadAll(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, customers)
		assert.Empty(t, customers)
	})
}

func TestWriteAllReadAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))

	collection := customer.SeedCustomers()
	collection[2].Status = customer.StatusApproved
	collection[4].LoanRepaymentHistory = customer.RepaymentHistory{0, 0, 1}

	require.NoError(t, store.WriteAll(ctx, collection))

	got, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assertSameCollection(t, collection, got)

	for i := range collection {
		assert.True(t, collection[i].MonthlyIncome.Equal(got[i].MonthlyIncome))
		assert.True(t, collection[i].AccountBalance.Equal(got[i].AccountBalance))
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestWriteAllEmptyCollectionWritesArray(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))

	require.NoError(t, store.WriteAll(ctx, nil))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteAllPropagatesFailure(t *testing.T) {
	store := NewCustomerStore(filepath.Join(t.TempDir(), "missing-dir", "customers.json"), testLogger)

	err := store.WriteAll(context.Background(), customer.SeedCustomers())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestStatusUpdateKeepsStoredRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))

	first := `{"customerId":"CUST1","name":"Ann","monthlyIncome":5000,"monthlyExpenses":2000,"creditScore":700,"outstandingLoans":0,"loanRepaymentHistory":[1,1],"accountBalance":900,"status":"Review","riskNotes":"keep me"}`
	second := `{"customerId":"CUST2","name":"Ben","monthlyIncome":4000,"status":"Review"}`
	require.NoError(t, os.WriteFile(store.Path(), []byte("["+first+","+second+"]"), 0o644))

	customers, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	idx := customer.FindByID(customers, "CUST2")
	require.Equal(t, 1, idx)
	require.NoError(t, customers[idx].SetStatus(customer.StatusApproved))
	require.NoError(t, store.WriteAll(ctx, customers))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var records []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	var compacted bytes.Buffer
	require.NoError(t, json.Compact(&compacted, records[0]))
	assert.Equal(t, first, compacted.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(records[1], &updated))
	assert.Equal(t, "Approved", updated["status"])
	assert.Equal(t, "Ben", updated["name"])
	assert.NotContains(t, updated, "loanRepaymentHistory")
	assert.NotContains(t, updated, "creditScore")
	assert.Len(t, updated, 4)
}

func TestReadAllToleratesLooseFieldTypes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))

	raw := `[
  {"customerId":"CUST1","name":"Ann","creditScore":700.0,"status":"Review"},
  {"customerId":"CUST2","name":"Ben","creditScore":"n/a","monthlyIncome":null,"status":"Approved"}
]`
	require.NoError(t, os.WriteFile(store.Path(), []byte(raw), 0o644))

	customers, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 700, customers[0].CreditScore)
	assert.Equal(t, "CUST2", customers[1].CustomerID)
	assert.Equal(t, 0, customers[1].CreditScore)
	assert.Equal(t, customer.StatusApproved, customers[1].Status)
}

func TestWriteAllLeavesHTMLCharactersUnescaped(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))

	collection := customer.SeedCustomers()
	collection[0].Name = "AT&T <Holdings>"
	require.NoError(t, store.WriteAll(ctx, collection))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "AT&T <Holdings>"`)
	assert.NotContains(t, string(data), `\u0026`)
	assert.False(t, strings.HasSuffix(string(data), "\n"))
}
