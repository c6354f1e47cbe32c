package service

import (
	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
)

func incrementAccessTokensIssued() {
	metrics.TokensIssuedTotal.Inc()
}

func incrementLogins(outcome string) {
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
}

func incrementTokenRejections(reason string) {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
}
