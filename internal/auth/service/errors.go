package service

import (
	commonerrors "github.com/trandrew/microblog/internal/common/errors"
)

// Expired, tampered and unknown-user tokens are deliberately
// indistinguishable to callers.
var ErrInvalidResetToken = commonerrors.ErrInvalidResetToken
