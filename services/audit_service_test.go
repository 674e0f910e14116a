package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"friendgraph-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_CleanGraphHasNoAnomalies(t *testing.T) {
	store := newMemAccountStore(
		account("a", []string{"b"}, []string{"c"}),
		account("b", []string{"a"}, nil),
		account("c", nil, nil),
	)

	report, err := NewAuditService(store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.AccountsScanned)
	assert.Empty(t, report.Anomalies)
}

func TestAudit_ReportsEveryKind(t *testing.T) {
	store := newMemAccountStore(
		account("a", []string{"b", "a"}, nil),
		account("b", nil, []string{"ghost"}),
		account("c", []string{"d"}, []string{"d"}),
		account("d", []string{"c"}, nil),
	)

	report, err := NewAuditService(store, nil).Run(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []Anomaly{
		{Kind: AnomalyAsymmetricFriendship, AccountID: "a", OtherID: "b"},
		{Kind: AnomalySelfReference, AccountID: "a", OtherID: "a"},
		{Kind: AnomalyDanglingReference, AccountID: "b", OtherID: "ghost"},
		{Kind: AnomalyPendingWhileFriends, AccountID: "c", OtherID: "d"},
	}, report.Anomalies)
	assert.Equal(t, 1, report.Count(AnomalyAsymmetricFriendship))
}

func TestAudit_ScansAcrossBatches(t *testing.T) {
	accounts := make([]models.Account, 0, auditBatchSize+5)
	for i := 0; i < auditBatchSize+5; i++ {
		accounts = append(accounts, account(fmt.Sprintf("acct-%04d", i), nil, nil))
	}
	accounts[len(accounts)-1].Friends = models.IDSet{"acct-0000"}
	store := newMemAccountStore(accounts...)

	report, err := NewAuditService(store, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auditBatchSize+5, report.AccountsScanned)
	assert.Equal(t, 1, report.Count(AnomalyAsymmetricFriendship))
}

func TestAudit_StoreErrorIsInternal(t *testing.T) {
	store := newMemAccountStore(account("a", []string{"b"}, nil))
	store.findErr = errors.New("timeout")

	_, err := NewAuditService(store, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
