// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Lifecycle LifecycleService // 访问请求生命周期 Service
	Account   AccountService   // 账号认证 Service
	Directory DirectoryService // 档案管理 Service
}

// Deps Service 层的装配参数
// 各实现的构造函数在子包中，聚合时由 main 统一装配，避免 service 包反向依赖实现包
type Deps struct {
	Lifecycle LifecycleService
	Account   AccountService
	Directory DirectoryService
}

// NewServices 聚合各 Service 实例
func NewServices(deps Deps) *Services {
	return &Services{
		Lifecycle: deps.Lifecycle,
		Account:   deps.Account,
		Directory: deps.Directory,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Lifecycle.Create() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 初始化之后
func InitServices(deps Deps) {
	Svc = NewServices(deps)
}
