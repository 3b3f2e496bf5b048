package domain

import "time"

type WorkerState string

const (
	StateResolveURL WorkerState = "resolve_url"
	StateWarmup     WorkerState = "warmup"
	StateCheckout   WorkerState = "checkout"
	StateSubmit     WorkerState = "submit"
	StateSuccess    WorkerState = "success"
	StateRetry      WorkerState = "retry"
)

type OutcomeKind string

const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeRejected  OutcomeKind = "rejected"
	OutcomeTransient OutcomeKind = "transient"
)

// Outcome is the classified result of one order submission.
type Outcome struct {
	Kind        OutcomeKind
	PurchaseURL string
	Reason      string
	Code        int
	Raw         string
}

func Success(purchaseURL string) Outcome {
	return Outcome{Kind: OutcomeSuccess, PurchaseURL: purchaseURL}
}

func Rejected(reason string, code int) Outcome {
	return Outcome{Kind: OutcomeRejected, Reason: reason, Code: code}
}

func Transient(reason string, raw string) Outcome {
	return Outcome{Kind: OutcomeTransient, Reason: reason, Raw: raw}
}

func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// AcquisitionAttempt records one loop iteration of one worker. It is never
// shared between workers.
type AcquisitionAttempt struct {
	ID          string
	RunID       string
	Worker      int
	Iteration   int
	PurchaseURL string
	StartedAt   time.Time
	FinishedAt  time.Time
	State       WorkerState
	Outcome     *Outcome
	Err         string
}

// WorkerResult is what a worker hands back once its loop ends.
type WorkerResult struct {
	Worker     int
	Iterations int
	Acquired   bool
	// PurchaseURL is the payment link of the first accepted order, if any.
	PurchaseURL string
}
