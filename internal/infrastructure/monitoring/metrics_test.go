package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStatusUpdate(t *testing.T) {
	Business.StatusUpdatesTotal.Reset()

	RecordStatusUpdate("Rejected")
	RecordStatusUpdate("Rejected")
	RecordStatusUpdate("Approved")

	assert.Equal(t, 2.0, testutil.ToFloat64(Business.StatusUpdatesTotal.WithLabelValues("Rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Business.StatusUpdatesTotal.WithLabelValues("Approved")))
}

func TestRecordAlert(t *testing.T) {
	before := testutil.ToFloat64(Business.AlertsTotal)
	RecordAlert()
	assert.Equal(t, before+1, testutil.ToFloat64(Business.AlertsTotal))
}

func TestSetCustomersByStatus(t *testing.T) {
	SetCustomersByStatus("Review", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(Business.CustomersByStatus.WithLabelValues("Review")))
}

func TestRecordStoreOperation(t *testing.T) {
	Store.OperationDuration.Reset()

	RecordStoreOperation("file", "read_all", nil, 2*time.Millisecond)
	RecordStoreOperation("file", "write_all", errors.New("disk full"), time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(Store.OperationDuration))
}
