package proto

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errs "nxn_tictactoe/internal/errors"
)

const errorDomain = "nxn_tictactoe"

type errorReason struct {
	err    error
	reason string
	code   codes.Code
}

var errorReasons = []errorReason{
	{errs.ErrInvalidBoard, "INVALID_BOARD", codes.InvalidArgument},
	{errs.ErrInvalidSymbol, "INVALID_SYMBOL", codes.InvalidArgument},
	{errs.ErrInvalidDifficulty, "INVALID_DIFFICULTY", codes.InvalidArgument},
	{errs.ErrBoardTooLarge, "BOARD_TOO_LARGE", codes.InvalidArgument},
	{errs.ErrIllegalMove, "ILLEGAL_MOVE", codes.FailedPrecondition},
	{errs.ErrNoLegalMove, "NO_LEGAL_MOVE", codes.FailedPrecondition},
	{errs.ErrSearchTimeout, "SEARCH_TIMEOUT", codes.DeadlineExceeded},
}

// StatusFromError converts a domain error into a gRPC status carrying an
// ErrorInfo reason, so the client can restore the sentinel.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	for _, r := range errorReasons {
		if errors.Is(err, r.err) {
			st, detailErr := status.New(r.code, err.Error()).WithDetails(&errdetails.ErrorInfo{
				Reason: r.reason,
				Domain: errorDomain,
			})
			if detailErr != nil {
				return status.Error(r.code, err.Error())
			}
			return st.Err()
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// ErrorFromStatus is the inverse of StatusFromError. Transport failures are
// wrapped in ErrInternal.
func ErrorFromStatus(err error) error {
	if err == nil {
		return nil
	}
	st := status.Convert(err)
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		for _, r := range errorReasons {
			if r.reason == info.GetReason() {
				return fmt.Errorf("%w: remote engine: %s", r.err, st.Message())
			}
		}
	}
	switch st.Code() {
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", errs.ErrSearchTimeout, context.DeadlineExceeded)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: remote engine: %s", errs.ErrInvalidBoard, st.Message())
	}
	return fmt.Errorf("%w: %w", errs.ErrInternal, err)
}
