package response

// 错误码按 HTTP 状态码 ×100 分段，Fail 据此推导响应状态码
var (
	// 认证
	ErrTokenInvalid = newError(40100, "登录凭证无效或已过期")
	ErrUnauthorized = newError(40101, "请先登录")

	// 权限
	ErrForbidden = newError(40300, "没有权限执行此操作")

	// 资源
	ErrNotFound = newError(40400, "资源不存在")

	// 请求与业务校验
	ErrInvalidRequest  = newError(40000, "请求参数错误")
	ErrAlreadyExists   = newError(40001, "记录已存在")
	ErrInvalidPassword = newError(40002, "密码错误")

	// 报名生命周期
	ErrAlreadyRegistered = newError(40010, "已经报名过该活动")
	ErrDeadlineExpired   = newError(40011, "报名截止时间已过")
	ErrActivityFull      = newError(40012, "活动名额已满")
	ErrNotRegistered     = newError(40013, "尚未报名该活动")
	ErrAlreadyCancelled  = newError(40014, "报名已经取消")
	ErrInvalidState      = newError(40015, "当前报名状态不允许此操作")

	// 服务端
	ErrDatabase = newError(50000, "数据库操作失败")
	ErrInternal = newError(50001, "服务内部错误")
	ErrUpstream = newError(50002, "上游服务调用失败")
)
