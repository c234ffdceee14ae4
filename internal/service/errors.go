package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrAccountNotFound  = errors.New("社交账号不存在")
	ErrAccountInactive  = errors.New("社交账号已停用")
	ErrAccountForbidden = errors.New("无权访问该账号")
	ErrSyncInProgress   = errors.New("账号正在同步中")
	UnauthorizedError   = errors.New("权限不足")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrAccountNotFound:  NotFound,
	ErrAccountInactive:  BadRequest,
	ErrAccountForbidden: Forbidden,
	ErrSyncInProgress:   Conflict,
	UnauthorizedError:   Unauthorized,
	UnExpectedError:     InternalServerError,
}
