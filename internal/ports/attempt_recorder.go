package ports

import "github.com/bnema/seckill-cli/internal/domain"

type AttemptRecorder interface {
	Record(attempt domain.AcquisitionAttempt) error
}

type NopAttemptRecorder struct{}

func (NopAttemptRecorder) Record(domain.AcquisitionAttempt) error {
	return nil
}
