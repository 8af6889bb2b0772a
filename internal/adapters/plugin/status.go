package plugin

import (
	"errors"

	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps an invocation error to a gRPC status carrying its message.
// Timeouts are checked first since a timed out step also reports a step failure.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	code := codes.Internal
	switch {
	case errors.Is(err, domain.ErrUnknownTask):
		code = codes.NotFound
	case errors.Is(err, domain.ErrMissingEnvironmentVariable):
		code = codes.FailedPrecondition
	case errors.Is(err, domain.ErrTimeout):
		code = codes.DeadlineExceeded
	case errors.Is(err, domain.ErrStepExecutionFailed), errors.Is(err, domain.ErrPrerequisitesFailed):
		code = codes.Aborted
	}
	return status.Error(code, err.Error())
}

// fromStatus restores the error kind of a status returned by the service.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return zerr.Wrap(errors.Join(domain.ErrPluginUnavailable, err), "plugin call failed")
	}

	var kind error
	switch st.Code() {
	case codes.NotFound:
		kind = domain.ErrUnknownTask
	case codes.FailedPrecondition:
		kind = domain.ErrMissingEnvironmentVariable
	case codes.DeadlineExceeded:
		kind = domain.ErrTimeout
	case codes.Aborted:
		kind = domain.ErrStepExecutionFailed
	case codes.Unavailable:
		kind = domain.ErrPluginUnavailable
	default:
		return zerr.With(zerr.Wrap(errors.New(st.Message()), "plugin call failed"), "code", st.Code().String())
	}
	return zerr.With(zerr.Wrap(errors.Join(kind, errors.New(st.Message())), "plugin call failed"), "code", st.Code().String())
}
