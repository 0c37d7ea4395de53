package constants

import "time"

const (
	CHANNEL_SIZE  = 100 // 广播通道缓冲大小
	REDIS_TIMEOUT = 1   // redis 缓存过期时间 (分钟)

	// 访问请求约束
	MIN_DURATION_MINUTES = 5   // 拜访时长下限（分钟）
	MAX_DURATION_MINUTES = 480 // 拜访时长上限（分钟）
	MAX_PURPOSE_DESC_LEN = 200 // 拜访目的描述长度上限

	// 排队等待估算：每个排在前面的请求估算 15 分钟
	WAIT_MINUTES_PER_SLOT = 15

	// 公开提交接口限流：每个 IP 在窗口期内最多提交次数
	CREATE_RATE_LIMIT_COUNT  = 3
	CREATE_RATE_LIMIT_WINDOW = 15 * time.Minute

	// 管理员权限点
	PERMISSION_FORCE_ACCEPT = "force_accept" // 越过成员直接接受请求

	// 管理员代操作时写入响应附言的固定文案
	ADMIN_OVERRIDE_MESSAGE = "管理员代为接受"
)
