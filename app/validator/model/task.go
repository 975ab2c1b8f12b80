package model

import "github.com/TrustWeave/proofdao/common/util"

const (
	SubmissionStatusPending  = "Pending"
	SubmissionStatusApproved = "Approved"
	SubmissionStatusRejected = "Rejected"
)

// Task is the unit of work being validated against. It is owned by the
// task-management collaborator; this service only reads it.
type Task struct {
	ID             string        `bson:"taskId" json:"id"`
	Title          string        `bson:"title" json:"title"`
	Description    string        `bson:"description" json:"description"`
	Requirements   string        `bson:"requirements" json:"requirements"`
	Skills         []string      `bson:"skills" json:"skills"`
	Reward         float64       `bson:"reward" json:"reward"`
	Deadline       util.Datetime `bson:"deadline" json:"deadline"`
	MaxSubmissions int           `bson:"maxSubmissions" json:"maxSubmissions"`
}

// Submission status transitions are applied by the collaborator based on the
// recommendation this service returns; they are never mutated here.
type Submission struct {
	ID          string        `bson:"submissionId" json:"id"`
	TaskID      string        `bson:"taskId" json:"taskId"`
	Contributor string        `bson:"contributor" json:"contributor"`
	WorkURL     string        `bson:"workUrl" json:"workUrl"`
	Description string        `bson:"description" json:"description"`
	SubmittedAt util.Datetime `bson:"submittedAt" json:"submittedAt"`
	Status      string        `bson:"status" json:"status"`
}
