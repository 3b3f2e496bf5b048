package classify

import "github.com/bnema/seckill-cli/internal/domain"

const (
	challengeCodeConfirmed = 200
	challengeCodeWaiting   = 201
	challengeCodeScanned   = 202
)

// Submit classifies an order submission response.
func Submit(raw string) domain.Outcome {
	payload, err := Parse(raw)
	if err != nil {
		return domain.Transient(err.Error(), raw)
	}

	if payload.Bool("success") {
		return domain.Success(payload.String("pcUrl"))
	}

	code, _ := payload.Int("resultCode")
	outcome := domain.Rejected(payload.String("errorMessage"), code)
	outcome.Raw = raw
	return outcome
}

// Challenge classifies one confirmation poll of the scan-to-login flow.
func Challenge(raw string) (domain.ChallengePoll, error) {
	payload, err := Parse(raw)
	if err != nil {
		return domain.ChallengePoll{}, err
	}

	code, ok := payload.Int("code")
	poll := domain.ChallengePoll{Code: code, Message: payload.String("msg")}
	switch {
	case !ok:
		poll.Status = domain.ChallengeFailed
		poll.Message = "response carries no code"
	case code == challengeCodeConfirmed:
		poll.Status = domain.ChallengeConfirmed
		poll.Ticket = payload.String("ticket")
		if poll.Ticket == "" {
			poll.Status = domain.ChallengeFailed
			poll.Message = "confirmed without ticket"
		}
	case code == challengeCodeWaiting, code == challengeCodeScanned:
		poll.Status = domain.ChallengePending
	default:
		poll.Status = domain.ChallengeFailed
	}

	return poll, nil
}
