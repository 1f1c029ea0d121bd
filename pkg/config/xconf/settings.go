package xconf

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/omeyang/xipbin/pkg/observability/xlog"
	"github.com/omeyang/xipbin/pkg/observability/xrotate"
	"github.com/omeyang/xipbin/pkg/util/xipbin"
)

// 输出格式
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultWorkers 是 bucket 默认同时读取的文件数。
const DefaultWorkers = 4

// Settings 是 xipbin 命令行的配置文件结构。
//
//	precision: 10
//	output: text
//	log:
//	  level: info
//	  format: text
//	  file: /var/log/xipbin/xipbin.log
//	  rotate:
//	    max_size_mb: 100
//	    max_backups: 7
//	bucket:
//	  dedup_size: 65536
//	  dedup_ttl: 10m
//	  sample_rate: 0.1
//	  workers: 4
type Settings struct {
	Precision int            `koanf:"precision"`
	Output    string         `koanf:"output"`
	Log       LogSettings    `koanf:"log"`
	Bucket    BucketSettings `koanf:"bucket"`
}

// LogSettings 日志配置，File 为空时输出到 stderr。
type LogSettings struct {
	Level  string         `koanf:"level"`
	Format string         `koanf:"format"`
	File   string         `koanf:"file"`
	Rotate xrotate.Config `koanf:"rotate"`
}

// BucketSettings 分桶计数的去重窗口配置。
type BucketSettings struct {
	DedupSize int           `koanf:"dedup_size"`
	DedupTTL  time.Duration `koanf:"dedup_ttl"`

	// SampleRate 按地址一致采样的比率，0 表示不采样
	SampleRate float64 `koanf:"sample_rate"`

	// Workers 同时读取的输入文件数
	Workers int `koanf:"workers"`
}

// DefaultSettings 返回未提供配置文件时的默认值。
func DefaultSettings() Settings {
	return Settings{
		Precision: xipbin.DefaultPrecision,
		Output:    OutputText,
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
			Rotate: xrotate.DefaultConfig(),
		},
		Bucket: BucketSettings{
			Workers: DefaultWorkers,
		},
	}
}

// LoadSettings 在默认值之上叠加 cfg 中的值并校验。cfg 为 nil 时返回默认值。
func LoadSettings(cfg Config) (Settings, error) {
	s := DefaultSettings()
	if cfg == nil {
		return s, nil
	}
	if err := cfg.Unmarshal("", &s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验各字段取值，返回全部问题。
func (s Settings) Validate() error {
	var errs []error
	if s.Precision < 1 || s.Precision > xipbin.MaxPrecision {
		errs = append(errs, fmt.Errorf("precision %d not in 1~%d", s.Precision, xipbin.MaxPrecision))
	}
	switch strings.ToLower(s.Output) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output %q, want text|json|yaml", s.Output))
	}
	if _, err := xlog.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if s.Log.File != "" {
		if err := s.Log.Rotate.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Bucket.DedupSize < 0 {
		errs = append(errs, fmt.Errorf("bucket.dedup_size %d is negative", s.Bucket.DedupSize))
	}
	if s.Bucket.DedupTTL < 0 {
		errs = append(errs, fmt.Errorf("bucket.dedup_ttl %s is negative", s.Bucket.DedupTTL))
	}
	if math.IsNaN(s.Bucket.SampleRate) || s.Bucket.SampleRate < 0 || s.Bucket.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("bucket.sample_rate %v not in 0~1", s.Bucket.SampleRate))
	}
	if s.Bucket.Workers < 1 {
		errs = append(errs, fmt.Errorf("bucket.workers %d, want >= 1", s.Bucket.Workers))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}
