package domain

// Challenge is the out-of-band login artifact, typically a QR code image.
type Challenge struct {
	Image       []byte
	ContentType string
}

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeConfirmed ChallengeStatus = "confirmed"
	ChallengeFailed    ChallengeStatus = "failed"
)

// ChallengePoll is the result of one confirmation poll.
type ChallengePoll struct {
	Status  ChallengeStatus
	Ticket  string
	Code    int
	Message string
}
