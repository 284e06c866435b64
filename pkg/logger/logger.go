// Package logger 进程级 zap 日志
//
// Init 装配全局 logger, 之后通过包级函数或 WithContext 取用.
// 请求级字段 (request_id 等) 由中间件通过 NewContext 注入.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

const defaultService = "linkpepper"

var (
	base    *zap.Logger
	skipped *zap.Logger // 包级便捷函数使用, 多跳一层调用栈
)

// Config 日志配置
type Config struct {
	Level       string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format      string `yaml:"format" json:"format"` // json, console
	ServiceName string `yaml:"service_name" json:"service_name"`
}

// Init 装配全局 logger, 日志级别非法时报错
func Init(cfg *Config) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("unknown log level %q: %w", cfg.Level, err)
	}

	service := cfg.ServiceName
	if service == "" {
		service = defaultService
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), zapcore.AddSync(os.Stdout), lvl)
	base = zap.New(core,
		zap.AddCaller(),
		zap.Fields(zap.String("service", service)),
	)
	skipped = base.WithOptions(zap.AddCallerSkip(1))
	return nil
}

// newEncoder console 格式供本地开发, 其余一律 JSON
func newEncoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// L 全局 logger, Init 之前调用时退回 zap 生产默认
func L() *zap.Logger {
	if base == nil {
		base, _ = zap.NewProduction()
	}
	return base
}

func pkg() *zap.Logger {
	if skipped == nil {
		skipped = L().WithOptions(zap.AddCallerSkip(1))
	}
	return skipped
}

// NewContext 把带字段的请求级 logger 放进 context
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, L().With(fields...))
}

// WithContext 取请求级 logger, 没有则回退全局
func WithContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return L()
}

// Info 信息日志
func Info(msg string, fields ...zap.Field) {
	pkg().Info(msg, fields...)
}

// Error 错误日志
func Error(msg string, fields ...zap.Field) {
	pkg().Error(msg, fields...)
}

// Fatal 致命错误, 打印后退出进程
func Fatal(msg string, fields ...zap.Field) {
	pkg().Fatal(msg, fields...)
}

// Sync 刷出缓冲日志
func Sync() error {
	if base == nil {
		return nil
	}
	return base.Sync()
}
