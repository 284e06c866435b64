// Package dto 提供数据传输对象定义
package dto

import "net/http"

// BizError 业务错误
type BizError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error 实现 error 接口
func (e *BizError) Error() string {
	return e.Message
}

// 认证错误 (10xxx)
var (
	ErrInvalidAddress     = &BizError{10001, "INVALID_ADDRESS", http.StatusBadRequest}
	ErrUnknownIdentity    = &BizError{10002, "UNKNOWN_IDENTITY", http.StatusBadRequest}
	ErrNoPendingChallenge = &BizError{10003, "NO_PENDING_CHALLENGE", http.StatusBadRequest}
	ErrMessageMismatch    = &BizError{10004, "MESSAGE_MISMATCH", http.StatusBadRequest}
	ErrBadSignature       = &BizError{10005, "BAD_SIGNATURE", http.StatusBadRequest}
	ErrAddressMismatch    = &BizError{10006, "ADDRESS_MISMATCH", http.StatusBadRequest}
	ErrUnauthorized       = &BizError{10007, "UNAUTHORIZED", http.StatusUnauthorized}
	ErrInvalidParams      = &BizError{10008, "INVALID_PARAMS", http.StatusBadRequest}
)

// 活动/提交错误 (11xxx)
var (
	ErrCampaignNotFound   = &BizError{11001, "CAMPAIGN_NOT_FOUND", http.StatusNotFound}
	ErrWrongTaskType      = &BizError{11002, "WRONG_TASK_TYPE", http.StatusBadRequest}
	ErrCampaignClosed     = &BizError{11003, "CAMPAIGN_CLOSED", http.StatusBadRequest}
	ErrMissingWalletInfo  = &BizError{11004, "MISSING_WALLET_INFO", http.StatusBadRequest}
	ErrSubmissionNotFound = &BizError{11005, "SUBMISSION_NOT_FOUND", http.StatusNotFound}
	ErrEventNotFound      = &BizError{11006, "EVENT_NOT_FOUND", http.StatusNotFound}
)

// 审核/打款错误 (12xxx)
var (
	ErrPayoutAlreadyExists = &BizError{12001, "PAYOUT_ALREADY_EXISTS", http.StatusConflict}
	ErrInvalidTransition   = &BizError{12002, "INVALID_STATE_TRANSITION", http.StatusConflict}
	ErrNotApproved         = &BizError{12003, "SUBMISSION_NOT_APPROVED", http.StatusBadRequest}
)

// 后台错误 (13xxx)
var (
	ErrStaffUnauthorized   = &BizError{13001, "STAFF_UNAUTHORIZED", http.StatusUnauthorized}
	ErrStaffForbidden      = &BizError{13002, "STAFF_FORBIDDEN", http.StatusForbidden}
	ErrLoginFailed         = &BizError{13003, "LOGIN_FAILED", http.StatusUnauthorized}
	ErrAccountLocked       = &BizError{13004, "ACCOUNT_LOCKED", http.StatusUnauthorized}
	ErrAccountDisabled     = &BizError{13005, "ACCOUNT_DISABLED", http.StatusUnauthorized}
	ErrApplicationNotFound = &BizError{13006, "APPLICATION_NOT_FOUND", http.StatusNotFound}
)

// 系统错误 (20xxx)
var (
	ErrInternalError = &BizError{20001, "INTERNAL_ERROR", http.StatusInternalServerError}
)

// NewBizError 创建自定义业务错误
func NewBizError(code int, message string, httpStatus int) *BizError {
	return &BizError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// WithMessage 返回带自定义消息的错误副本
func (e *BizError) WithMessage(msg string) *BizError {
	return &BizError{
		Code:       e.Code,
		Message:    msg,
		HTTPStatus: e.HTTPStatus,
	}
}
