package leave

// Action identifies an operation that may be offered on a leave application.
type Action string

const (
	ActionUploadApplication   Action = "upload_application"
	ActionDownloadApplication Action = "download_application_docx"
	ActionApprove             Action = "approve"
	ActionRevision            Action = "revision"
	ActionReject              Action = "reject"
	ActionCreateOrder         Action = "create_order"
	ActionUploadOrder         Action = "upload_order"
	ActionDownloadOrder       Action = "download_order_docx"
	ActionComplete            Action = "complete"
	ActionUploadCertificate   Action = "upload_certificate"
)

// Category groups actions for in-flight suppression. One flag per category per
// record; uploads are suppressed by the uploader component, not here.
type Category string

const (
	CategoryDownloadApplication Category = "downloading_application"
	CategoryReview              Category = "reviewing"
	CategoryCreateOrder         Category = "creating_order"
	CategoryDownloadOrder       Category = "downloading_order"
	CategoryComplete            Category = "completing"
	CategoryCertificate         Category = "updating_certificate"
)

var allCategories = []Category{
	CategoryDownloadApplication,
	CategoryReview,
	CategoryCreateOrder,
	CategoryDownloadOrder,
	CategoryComplete,
	CategoryCertificate,
}

// ActionInput is everything the resolver is allowed to look at. It must stay a
// value type so the action list is re-derivable with no hidden state.
type ActionInput struct {
	Status               Status
	LeaveType            LeaveType
	HasSignedApplication bool
	ReviewStatus         ReviewStatus
	HasOrderPDF          bool
	HasCertificate       bool
}

// BusyFlags marks categories with an operation currently in flight. Flags are
// injected by the caller; the resolver never computes them.
type BusyFlags struct {
	DownloadingApplication bool
	Reviewing              bool
	CreatingOrder          bool
	DownloadingOrder       bool
	Completing             bool
	UpdatingCertificate    bool
}

type ActionItem struct {
	Action Action `json:"action"`
	Busy   bool   `json:"busy"`
}

// ResolveActions computes the ordered list of permissible actions for a record.
// Pure and side-effect free: identical inputs always yield an identical,
// order-stable list. Terminal statuses yield an empty list.
func ResolveActions(in ActionInput, busy BusyFlags) []ActionItem {
	if in.Status.Terminal() {
		return []ActionItem{}
	}

	items := make([]ActionItem, 0, 4)
	add := func(a Action, b bool) {
		items = append(items, ActionItem{Action: a, Busy: b})
	}

	if in.Status == StatusAppPending {
		add(ActionUploadApplication, false)
	}

	// A signed PDF normally suppresses regeneration, but a copy sent back for
	// revision is stale and must not block producing a fresh draft.
	switch in.Status {
	case StatusAppPending, StatusAppReview, StatusAppApproved:
		if !in.HasSignedApplication || in.ReviewStatus == ReviewStatusRevision {
			add(ActionDownloadApplication, busy.DownloadingApplication)
		}
	}

	if in.Status == StatusAppReview {
		add(ActionApprove, busy.Reviewing)
		add(ActionRevision, busy.Reviewing)
		add(ActionReject, busy.Reviewing)
	}

	if in.Status == StatusAppApproved {
		add(ActionCreateOrder, busy.CreatingOrder)
	}

	if in.Status == StatusOrderPending {
		add(ActionUploadOrder, false)
	}

	switch in.Status {
	case StatusOrderPending, StatusOrderUploaded, StatusActive:
		if !in.HasOrderPDF {
			add(ActionDownloadOrder, busy.DownloadingOrder)
		}
	}

	if in.Status == StatusOrderUploaded {
		add(ActionComplete, busy.Completing)
	}

	if in.LeaveType == LeaveTypeMedical && !in.HasCertificate {
		switch in.Status {
		case StatusOrderUploaded, StatusActive:
			add(ActionUploadCertificate, busy.UpdatingCertificate)
		}
	}

	return items
}

// ActionInputFor derives the resolver input tuple from a record.
func ActionInputFor(l *LeaveApplication) ActionInput {
	in := ActionInput{
		Status:               l.Status,
		LeaveType:            l.LeaveType,
		HasSignedApplication: l.ApplicationPDFURL != nil && *l.ApplicationPDFURL != "",
		HasCertificate:       l.CertificatePDFURL != nil && *l.CertificatePDFURL != "",
	}
	if l.ApplicationReviewStatus != nil {
		in.ReviewStatus = *l.ApplicationReviewStatus
	}
	if l.Order != nil && l.Order.PDFURL != nil && *l.Order.PDFURL != "" {
		in.HasOrderPDF = true
	}
	return in
}
