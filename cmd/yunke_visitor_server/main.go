package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"yunke_visitor_server/internal/config"
	dao "yunke_visitor_server/internal/dao/mysql"
	myredis "yunke_visitor_server/internal/dao/redis"
	"yunke_visitor_server/internal/handler"
	"yunke_visitor_server/internal/http_server"
	"yunke_visitor_server/internal/infrastructure/audit"
	"yunke_visitor_server/internal/infrastructure/logger"
	"yunke_visitor_server/internal/infrastructure/notify"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/internal/service/account"
	"yunke_visitor_server/internal/service/broadcast"
	"yunke_visitor_server/internal/service/directory"
	"yunke_visitor_server/internal/service/lifecycle"
	"yunke_visitor_server/pkg/util/jwt"
	"yunke_visitor_server/pkg/util/snowflake"
)

// expireSweepInterval 过期请求后台扫描周期
const expireSweepInterval = time.Minute

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	cache := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 与雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 6. 初始化通知与审计
	smsSender, err := notify.NewSmsSender(conf.SmsConfig)
	if err != nil {
		zap.L().Fatal("SMS 初始化失败", zap.Error(err))
	}
	emailSender := notify.NewEmailSender(conf.EmailConfig)
	notifier := notify.NewNotifier(emailSender, smsSender, conf.SmsConfig)
	sink := audit.NewSink(repos.AuditLog)
	zap.L().Info("通知与审计初始化成功")

	// 7. 初始化实时广播（channel 或 kafka 模式）
	broadcastServer := broadcast.NewBroadcastServer(broadcast.BroadcastServerConfig{
		Mode:          conf.BroadcastConfig.Mode,
		KafkaHostPort: conf.BroadcastConfig.HostPort,
		KafkaTopic:    conf.BroadcastConfig.EventTopic,
	})
	broadcastServer.InitKafka()
	broadcast.GlobalBroker = broadcastServer.Broker
	go broadcastServer.Start()
	zap.L().Info("实时广播初始化成功", zap.String("mode", conf.BroadcastConfig.Mode))

	// 8. 初始化 Service 层（依赖注入）
	service.InitServices(service.Deps{
		Lifecycle: lifecycle.NewLifecycleService(repos, cache, notifier, sink),
		Account:   account.NewAccountService(repos, cache, smsSender, conf.SmsConfig.TemplateCode),
		Directory: directory.NewDirectoryService(repos),
	})
	zap.L().Info("Service 层初始化成功")

	// 9. 后台过期任务：预约时间已过仍未处理的 pending 请求标记为 expired
	go func() {
		ticker := time.NewTicker(expireSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := service.Svc.Lifecycle.ExpireOverdue(); err != nil {
				zap.L().Error("过期扫描失败", zap.Error(err))
			} else if n > 0 {
				zap.L().Info("过期扫描完成", zap.Int("expired", n))
			}
		}
	}()

	// 10. 初始化 HTTP 服务器并启动
	handlers := handler.NewHandlers(service.Svc, repos)
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}
	engine := http_server.Init(handlers)

	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务启动成功", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	broadcastServer.Close()
	zap.L().Info("服务器已关闭")
}
