package model

import "github.com/google/uuid"

// Field groups a session refresh may replace. Identity fields are never part
// of a group and never change after login.
const (
	FieldGroupParticipation = "processParticipation"
	FieldGroupAccountTask   = "accountTask"
)

// TaskKind classifies the account verification task state.
type TaskKind string

const (
	TaskPending    TaskKind = "PENDING"
	TaskInProgress TaskKind = "IN_PROGRESS"
	TaskCompleted  TaskKind = "COMPLETED"
	TaskRejected   TaskKind = "REJECTED"
)

// TaskStatus is the account verification task state with an optional
// rejection reason.
type TaskStatus struct {
	Kind            TaskKind `json:"kind"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
}

// Participation holds the company's process participation counters.
type Participation struct {
	TenderCount  int `json:"tenderCount"`
	InquiryCount int `json:"inquiryCount"`
	CallCount    int `json:"callCount"`
}

// SessionUser is the payload carried inside a session token. Identity fields
// are fixed at login. Derived facts are nil until first populated; they are
// the only fields a refresh may overwrite.
type SessionUser struct {
	UserID      uuid.UUID `json:"userId"`
	CompanyID   uuid.UUID `json:"companyId"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CompanyName string    `json:"companyName"`
	StatusCode  int       `json:"statusCode"`

	AccountTask   *TaskStatus    `json:"accountTask,omitempty"`
	Participation *Participation `json:"processParticipation,omitempty"`
}
