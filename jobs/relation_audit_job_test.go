package jobs

import (
	"testing"
	"time"

	"friendgraph-api/database"
	"friendgraph-api/models"
	"friendgraph-api/repositories"
	"friendgraph-api/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationAuditJob_RunsOnStartAndSetsGauge(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&[]models.Account{
		{ID: "a", Username: "a", Friends: models.IDSet{"b"}, PendingFriendRequests: models.IDSet{}},
		{ID: "b", Username: "b", Friends: models.IDSet{}, PendingFriendRequests: models.IDSet{"ghost"}},
	}).Error)

	audit := services.NewAuditService(repositories.NewAccountRepository(db), nil)
	job := NewRelationAuditJob(audit, time.Hour, nil)
	job.ran = make(chan services.AuditReport, 1)

	job.Start()
	defer job.Stop()

	select {
	case report := <-job.ran:
		assert.Equal(t, 2, report.AccountsScanned)
		assert.Len(t, report.Anomalies, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("audit did not run on start")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(relationAnomalies.WithLabelValues(string(services.AnomalyAsymmetricFriendship))))
	assert.Equal(t, 1.0, testutil.ToFloat64(relationAnomalies.WithLabelValues(string(services.AnomalyDanglingReference))))
	assert.Equal(t, 0.0, testutil.ToFloat64(relationAnomalies.WithLabelValues(string(services.AnomalySelfReference))))
}
