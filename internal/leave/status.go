package leave

// Status is the lifecycle position of a leave application. Forward progress is
// linear; the only backward edge is app_review -> app_pending (revision) and the
// only side exit is app_review -> cancelled (rejection).
type Status string

const (
	StatusDraft         Status = "draft"
	StatusAppPending    Status = "app_pending"
	StatusAppReview     Status = "app_review"
	StatusAppApproved   Status = "app_approved"
	StatusOrderPending  Status = "order_pending"
	StatusOrderUploaded Status = "order_uploaded"
	StatusActive        Status = "active"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
)

var allStatuses = []Status{
	StatusDraft,
	StatusAppPending,
	StatusAppReview,
	StatusAppApproved,
	StatusOrderPending,
	StatusOrderUploaded,
	StatusActive,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal statuses offer no actions and accept no transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Trigger string

const (
	TriggerUploadApplication Trigger = "upload_application"
	TriggerReviewApprove     Trigger = "review_approve"
	TriggerReviewRevision    Trigger = "review_revision"
	TriggerReviewReject      Trigger = "review_reject"
	TriggerCreateOrder       Trigger = "create_order"
	TriggerUploadOrder       Trigger = "upload_order"
	TriggerComplete          Trigger = "complete"
	TriggerExpire            Trigger = "expire"
)

var transitions = map[Status]map[Trigger]Status{
	StatusAppPending: {
		TriggerUploadApplication: StatusAppReview,
	},
	StatusAppReview: {
		TriggerReviewApprove:  StatusAppApproved,
		TriggerReviewRevision: StatusAppPending,
		TriggerReviewReject:   StatusCancelled,
	},
	StatusAppApproved: {
		TriggerCreateOrder: StatusOrderPending,
	},
	StatusOrderPending: {
		TriggerUploadOrder: StatusOrderUploaded,
	},
	StatusOrderUploaded: {
		TriggerComplete: StatusActive,
	},
	StatusActive: {
		// TriggerExpire is fired by the scheduler sweep, never by a client action.
		TriggerExpire: StatusCompleted,
	},
}

// NextStatus returns the target status for trigger fired from current, or
// false when the transition is not allowed.
func NextStatus(current Status, trigger Trigger) (Status, bool) {
	next, ok := transitions[current][trigger]
	return next, ok
}

// EditAllowed reports whether the submitter may still edit or delete the
// record. Once review has started the record is read-only to the submitter.
func EditAllowed(s Status) bool {
	return s == StatusDraft || s == StatusAppPending
}
