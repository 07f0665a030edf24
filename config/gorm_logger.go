package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger sends gorm's log through go-kit, keeping gorm's own
// severities: failed queries at error, slow queries at warn, the rest at
// debug.
type GormLogger struct {
	logger        log.Logger
	slowThreshold time.Duration
	logLevel      logger.LogLevel
}

func NewGormLogger(lg log.Logger, slowThreshold time.Duration, lvl logger.LogLevel) *GormLogger {
	return &GormLogger{logger: lg, slowThreshold: slowThreshold, logLevel: lvl}
}

func (l *GormLogger) LogMode(lvl logger.LogLevel) logger.Interface {
	clone := *l
	clone.logLevel = lvl
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Info {
		level.Info(l.logger).Log("msg", fmt.Sprintf(msg, args...), "caller", utils.FileWithLineNum())
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Warn {
		level.Warn(l.logger).Log("msg", fmt.Sprintf(msg, args...), "caller", utils.FileWithLineNum())
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= logger.Error {
		level.Error(l.logger).Log("msg", fmt.Sprintf(msg, args...), "caller", utils.FileWithLineNum())
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.logLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		level.Error(l.logger).Log("msg", "query failed", "err", err, "elapsed", elapsed, "rows", rows, "sql", sql, "caller", utils.FileWithLineNum())
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.logLevel >= logger.Warn:
		sql, rows := fc()
		level.Warn(l.logger).Log("msg", "slow query", "threshold", l.slowThreshold, "elapsed", elapsed, "rows", rows, "sql", sql, "caller", utils.FileWithLineNum())
	case l.logLevel >= logger.Info:
		sql, rows := fc()
		level.Debug(l.logger).Log("msg", "query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
