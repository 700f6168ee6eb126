/*
ConfigWatcher 配置文件监听器
监听配置目录，配置文件写入或创建后(500ms 防抖)重新加载，并把新旧配置交给注册的回调。
目前用于运行时调整日志级别，其余配置项变化需要重启服务。
*/
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const reloadDebounce = 500 * time.Millisecond

// ReloadCallback 配置重载回调函数类型
type ReloadCallback func(oldConfig, newConfig *Config) error

// ConfigWatcher 配置文件监听器
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	env        string
	callbacks  []ReloadCallback
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher(configPath, env string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ConfigWatcher{
		watcher:    watcher,
		configPath: configPath,
		env:        env,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}, nil
}

// Start 启动配置文件监听
func (cw *ConfigWatcher) Start() error {
	if err := cw.watcher.Add(cw.configPath); err != nil {
		return fmt.Errorf("failed to add config path to watcher: %w", err)
	}

	go cw.watchLoop()

	logrus.WithField("path", cw.configPath).Info("config watcher started")
	return nil
}

// Stop 停止配置文件监听
func (cw *ConfigWatcher) Stop() error {
	cw.cancel()

	select {
	case <-cw.done:
	case <-time.After(5 * time.Second):
		logrus.Warn("config watcher stop timeout")
	}

	return cw.watcher.Close()
}

// AddCallback 添加配置重载回调函数
func (cw *ConfigWatcher) AddCallback(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.done)

	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	for {
		select {
		case <-cw.ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && isConfigFile(event.Name) {
				debounceTimer.Reset(reloadDebounce)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("config watcher error")

		case <-debounceTimer.C:
			if err := cw.reloadConfig(); err != nil {
				logrus.WithError(err).Error("failed to reload config")
			}
		}
	}
}

// isConfigFile 检查是否为配置文件
func isConfigFile(filename string) bool {
	return slices.Contains([]string{
		"config.yaml", "config.yml",
		"config.test.yaml", "config.test.yml",
		"config.prod.yaml", "config.prod.yml",
	}, filepath.Base(filename))
}

func (cw *ConfigWatcher) reloadConfig() error {
	oldConfig := GlobalConfig

	newConfig, err := LoadConfig(cw.configPath, cw.env)
	if err != nil {
		return fmt.Errorf("failed to load new config: %w", err)
	}

	cw.mu.RLock()
	callbacks := slices.Clone(cw.callbacks)
	cw.mu.RUnlock()

	// 单个回调失败不影响其他回调
	for _, callback := range callbacks {
		if err := callback(oldConfig, newConfig); err != nil {
			logrus.WithError(err).Warn("config reload callback error")
		}
	}

	logrus.Info("config reloaded")
	return nil
}
