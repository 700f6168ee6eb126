// Package version 构建版本信息，BuildTime/GitCommit 由 -ldflags 注入
package version

import "runtime"

var (
	Version   = "1.0.0"
	BuildTime string
	GitCommit string
)

// GetVersion 版本号
func GetVersion() string {
	return Version
}

// GoVersion 编译所用 Go 版本
func GoVersion() string {
	return runtime.Version()
}
