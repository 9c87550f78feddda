// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 配置文件结构
type Config struct {
	Title   string   `toml:"Title"`
	Log     *Log     `toml:"log"`
	Store   *Store   `toml:"store"`
	Rent    *Rent    `toml:"rent"`
	Exec    *Exec    `toml:"exec"`
	Metrics *Metrics `toml:"metrics"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

// Store ledger backend
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

// Exec executor limits
type Exec struct {
	MaxInvokeDepth int `toml:"maxInvokeDepth"`
	// WagerProgram base58 id the wager program is deployed at, empty for the default
	WagerProgram string `toml:"wagerProgram"`
}

// Metrics metrics emission
type Metrics struct {
	EnableMetrics bool   `toml:"enableMetrics"`
	Namespace     string `toml:"namespace"`
}

// DefaultConfig config with every default filled
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

// InitCfg load config file
func InitCfg(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := tml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// InitCfgString load config text
func InitCfgString(cfgstring string) (*Config, error) {
	cfg := &Config{}
	if _, err := tml.Decode(cfgstring, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config string")
	}
	cfg.fillDefaults()
	return cfg, nil
}

// MustInitCfgString panic on a bad config, for tests and embedded defaults
func MustInitCfgString(cfgstring string) *Config {
	cfg, err := InitCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Title == "" {
		c.Title = "local"
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Store == nil {
		c.Store = &Store{}
	}
	if c.Store.Name == "" {
		c.Store.Name = "ledger"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memdb"
	}
	if c.Store.DbPath == "" {
		c.Store.DbPath = "datadir"
	}
	if c.Store.DbCache <= 0 {
		c.Store.DbCache = 128
	}
	if c.Rent == nil {
		r := DefaultRent()
		c.Rent = &r
	}
	if c.Rent.LamportsPerByteYear == 0 {
		c.Rent.LamportsPerByteYear = DefaultLamportsPerByteYear
	}
	if c.Rent.ExemptionThreshold <= 0 {
		c.Rent.ExemptionThreshold = DefaultExemptionThreshold
	}
	if c.Exec == nil {
		c.Exec = &Exec{}
	}
	if c.Exec.MaxInvokeDepth <= 0 {
		c.Exec.MaxInvokeDepth = DefaultMaxInvokeDepth
	}
	if c.Metrics == nil {
		c.Metrics = &Metrics{}
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "wager"
	}
}
