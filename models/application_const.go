package models

type ApplicationStatus string

const (
	AppStatusDraft              ApplicationStatus = "DRAFT"
	AppStatusSubmitted          ApplicationStatus = "SUBMITTED"
	AppStatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	AppStatusResubmitted        ApplicationStatus = "RESUBMITTED"
	AppStatusAmendmentRequested ApplicationStatus = "AMENDMENT_REQUESTED"
	AppStatusApproved           ApplicationStatus = "APPROVED"
	AppStatusRejected           ApplicationStatus = "REJECTED"
)

var appStatusHumanName = map[ApplicationStatus]string{
	AppStatusDraft:              "Draft",
	AppStatusSubmitted:          "Submitted",
	AppStatusUnderReview:        "Under review",
	AppStatusResubmitted:        "Resubmitted",
	AppStatusAmendmentRequested: "Amendment requested",
	AppStatusApproved:           "Approved",
	AppStatusRejected:           "Rejected",
}

func (s ApplicationStatus) IsValid() bool {
	_, exist := appStatusHumanName[s]
	return exist
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := appStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsEditable reports whether the issuer may still mutate step data.
func (s ApplicationStatus) IsEditable() bool {
	return s == AppStatusDraft || s == AppStatusAmendmentRequested
}

// IsReviewable reports whether admin section/item review actions are allowed.
func (s ApplicationStatus) IsReviewable() bool {
	return s == AppStatusSubmitted || s == AppStatusUnderReview || s == AppStatusResubmitted
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == AppStatusApproved || s == AppStatusRejected
}

type BlockReason string

const (
	BlockReasonNone           BlockReason = ""
	BlockProductDeleted       BlockReason = "PRODUCT_DELETED"
	BlockProductVersionChange BlockReason = "PRODUCT_VERSION_CHANGED"
)

func (b BlockReason) ToHuman() string {
	switch b {
	case BlockProductDeleted:
		return "The product this application was created for is no longer available"
	case BlockProductVersionChange:
		return "The product this application was created for has been updated"
	}
	return ""
}
