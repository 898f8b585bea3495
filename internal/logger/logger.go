package logger

import "go.uber.org/zap"

// Init 初始化全局 zap 日志器，业务代码统一通过 zap.L() 记日志
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
