package service

import "errors"

// 业务错误，由路由层映射为对应的 HTTP 状态码。
// 未列出的错误一律视为存储层故障（500）。
var (
	ErrInvalidTotal       = errors.New("invalid total amount")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("forbidden")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
