// internal/adapter/registry.go
package adapter

import (
	"fmt"
	"sort"

	"CricketSync/internal/config"
	"CricketSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 比赛来源工厂函数签名
// 入参：全局配置、日志实例
// 出参：实现 MatchSource 接口的来源实例
type Factory func(cfg *config.Config, logger *logrus.Logger) interfaces.MatchSource

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[string]Factory)

// Register 供来源包 init 函数调用，注册工厂函数
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("来源%s的工厂函数不能为nil", name))
	}
	if _, exists := factoryRegistry[name]; exists {
		logrus.Warnf("来源%s已注册，将覆盖原有实现", name)
	}
	factoryRegistry[name] = factory
}

// GetFactory 获取指定来源的工厂函数
func GetFactory(name string) (Factory, bool) {
	factory, ok := factoryRegistry[name]
	return factory, ok
}

// ListFactories 列出所有已注册的来源（按名称排序）
func ListFactories() []string {
	names := make([]string, 0, len(factoryRegistry))
	for n := range factoryRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewSource 按名称创建来源实例
func NewSource(name string, cfg *config.Config, logger *logrus.Logger) (interfaces.MatchSource, error) {
	factory, ok := GetFactory(name)
	if !ok {
		return nil, fmt.Errorf("未支持的来源: %s（已注册：%v）", name, ListFactories())
	}
	src := factory(cfg, logger)
	if src == nil {
		return nil, fmt.Errorf("来源%s的工厂函数返回nil", name)
	}
	return src, nil
}
