package leave

import (
	"time"

	"github.com/google/uuid"
)

// ReviewDecision is the single outcome chosen per review cycle.
type ReviewDecision string

const (
	DecisionApprove  ReviewDecision = "approve"
	DecisionRevision ReviewDecision = "revision"
	DecisionReject   ReviewDecision = "reject"
)

func ParseReviewDecision(v string) (ReviewDecision, bool) {
	switch ReviewDecision(v) {
	case DecisionApprove, DecisionRevision, DecisionReject:
		return ReviewDecision(v), true
	}
	return "", false
}

func (d ReviewDecision) trigger() Trigger {
	switch d {
	case DecisionApprove:
		return TriggerReviewApprove
	case DecisionRevision:
		return TriggerReviewRevision
	default:
		return TriggerReviewReject
	}
}

func (d ReviewDecision) reviewStatus() ReviewStatus {
	switch d {
	case DecisionApprove:
		return ReviewStatusApproved
	case DecisionRevision:
		return ReviewStatusRevision
	default:
		return ReviewStatusRejected
	}
}

// stampReview records one review outcome on the record. The note is advisory
// metadata: empty is valid even for revision and reject. The signed PDF is
// retained for audit on revision; the resolver's override rule treats it as
// stale.
func stampReview(l *LeaveApplication, d ReviewDecision, note string, reviewer uuid.UUID, at time.Time) {
	rs := d.reviewStatus()
	l.ApplicationReviewStatus = &rs
	l.ApplicationReviewedBy = &reviewer
	l.ApplicationReviewedAt = &at
	if note != "" {
		l.ApplicationReviewNote = &note
	} else {
		l.ApplicationReviewNote = nil
	}
}
