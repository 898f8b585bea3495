package auth

// 角色取值
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal 当前请求的认证主体，由鉴权中间件构造并显式传入各业务操作
type Principal struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
