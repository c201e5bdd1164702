package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App   AppConfig   `yaml:"app"`
	Timer TimerConfig `yaml:"timer"`
	Log   LogConfig   `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type TimerConfig struct {
	Interval  time.Duration `yaml:"interval"`
	AutoStart bool          `yaml:"autostart"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text 或 json
}

// 默认配置
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Stopwatch",
			WindowWidth:  400,
			WindowHeight: 300,
		},
		Timer: TimerConfig{
			Interval:  time.Second,
			AutoStart: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c *Config) Validate() error {
	if c.Timer.Interval <= 0 {
		return fmt.Errorf("timer.interval must be positive, got %v", c.Timer.Interval)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Apply 将日志配置应用到 logger
func (c LogConfig) Apply(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager 使用用户目录下的默认配置文件
func NewManager() (*Manager, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(configDir, "config.yaml"))
}

// NewManagerAt 加载指定路径的配置，文件不存在时写入默认配置。
// 文件存在但无效时返回错误，不改动用户的文件
func NewManagerAt(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	if err := manager.loadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// 缺失的字段保留默认值
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// 获取配置文件目录
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".stopwatch"), nil
}

// 更新配置的便捷方法
func (m *Manager) UpdateTimerConfig(config TimerConfig) error {
	next := *m.config
	next.Timer = config
	if err := next.Validate(); err != nil {
		return err
	}
	m.config.Timer = config
	return m.SaveConfig()
}

func (m *Manager) UpdateLogConfig(config LogConfig) error {
	next := *m.config
	next.Log = config
	if err := next.Validate(); err != nil {
		return err
	}
	m.config.Log = config
	return m.SaveConfig()
}
