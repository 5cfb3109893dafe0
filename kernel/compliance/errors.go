package compliance

import (
	"github.com/pkg/errors"
)

// 错误分类，调用方用errors.Is判断具体类别
var (
	ErrUnauthorized      = errors.New("caller unauthorized for this operation")
	ErrInvalidArgument   = errors.New("argument out of allowed range")
	ErrAlreadyExists     = errors.New("batch already exists")
	ErrNotFound          = errors.New("batch not found")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrMintingFailure    = errors.New("certificate minting failed")
)
