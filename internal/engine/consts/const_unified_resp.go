package consts

// UnifiedResponse 统一响应
const (
	// DETAIL 用于设置响应数据，例如查询，分页等，需要返回数据
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION 用于设置响应数据，例如新增，修改，删除等，不需要返回数据，只返回操作结果
	// e.g: c.Locals(OPERATION, "")
	OPERATION = "operation"

	// CLAIMS 认证中间件解析后的 JWT 载荷
	CLAIMS = "claims"
)

// Redis key 前缀
const (
	// UserSessionKey 登录会话，key 为 UserSessionKey + userId
	UserSessionKey = "vantage:session:"
)
