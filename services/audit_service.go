package services

import (
	"context"
	"log/slog"

	"friendgraph-api/models"
	"friendgraph-api/repositories"
)

const auditBatchSize = 200

type AnomalyKind string

const (
	AnomalyAsymmetricFriendship AnomalyKind = "asymmetric_friendship"
	AnomalySelfReference        AnomalyKind = "self_reference"
	AnomalyDanglingReference    AnomalyKind = "dangling_reference"
	AnomalyPendingWhileFriends  AnomalyKind = "pending_while_friends"
)

// AnomalyKinds lists every kind the audit reports.
var AnomalyKinds = []AnomalyKind{
	AnomalyAsymmetricFriendship,
	AnomalySelfReference,
	AnomalyDanglingReference,
	AnomalyPendingWhileFriends,
}

// Anomaly is one relation set entry that breaks the graph invariants.
type Anomaly struct {
	Kind      AnomalyKind
	AccountID string
	OtherID   string
}

// AuditReport counts the anomalies found by one audit pass.
type AuditReport struct {
	AccountsScanned int
	Anomalies       []Anomaly
}

func (r AuditReport) Count(kind AnomalyKind) int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// AuditService walks every account and reports relation sets that disagree
// with each other. It only reads; nothing is repaired.
type AuditService struct {
	accounts repositories.AccountStore
	logger   *slog.Logger
}

func NewAuditService(accounts repositories.AccountStore, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{accounts: accounts, logger: logger}
}

func (s *AuditService) Run(ctx context.Context) (AuditReport, error) {
	var report AuditReport

	after := ""
	for {
		batch, err := s.accounts.ListAfter(ctx, after, auditBatchSize)
		if err != nil {
			return report, internal("failed to list accounts", err)
		}
		if len(batch) == 0 {
			return report, nil
		}

		anomalies, err := s.checkBatch(ctx, batch)
		if err != nil {
			return report, err
		}
		for _, a := range anomalies {
			s.logger.WarnContext(ctx, "relation anomaly", "kind", a.Kind, "account_id", a.AccountID, "other_id", a.OtherID)
		}
		report.Anomalies = append(report.Anomalies, anomalies...)
		report.AccountsScanned += len(batch)

		after = batch[len(batch)-1].ID
		if len(batch) < auditBatchSize {
			return report, nil
		}
	}
}

func (s *AuditService) checkBatch(ctx context.Context, batch []models.Account) ([]Anomaly, error) {
	var referenced []string
	seen := make(map[string]struct{})
	for i := range batch {
		for _, id := range batch[i].Friends {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				referenced = append(referenced, id)
			}
		}
		for _, id := range batch[i].PendingFriendRequests {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				referenced = append(referenced, id)
			}
		}
	}

	others := make(map[string]*models.Account, len(referenced))
	if len(referenced) > 0 {
		found, err := s.accounts.FindByIDs(ctx, referenced)
		if err != nil {
			return nil, internal("failed to load referenced accounts", err)
		}
		for i := range found {
			others[found[i].ID] = &found[i]
		}
	}

	var anomalies []Anomaly
	for i := range batch {
		a := &batch[i]
		for _, id := range a.Friends {
			switch other, ok := others[id]; {
			case id == a.ID:
				anomalies = append(anomalies, Anomaly{Kind: AnomalySelfReference, AccountID: a.ID, OtherID: id})
			case !ok:
				anomalies = append(anomalies, Anomaly{Kind: AnomalyDanglingReference, AccountID: a.ID, OtherID: id})
			case !other.IsFriendOf(a.ID):
				anomalies = append(anomalies, Anomaly{Kind: AnomalyAsymmetricFriendship, AccountID: a.ID, OtherID: id})
			}
		}
		for _, id := range a.PendingFriendRequests {
			switch _, ok := others[id]; {
			case id == a.ID:
				anomalies = append(anomalies, Anomaly{Kind: AnomalySelfReference, AccountID: a.ID, OtherID: id})
			case !ok:
				anomalies = append(anomalies, Anomaly{Kind: AnomalyDanglingReference, AccountID: a.ID, OtherID: id})
			case a.IsFriendOf(id):
				anomalies = append(anomalies, Anomaly{Kind: AnomalyPendingWhileFriends, AccountID: a.ID, OtherID: id})
			}
		}
	}
	return anomalies, nil
}
