package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 描述打开数据库连接所需的参数。
type Options struct {
	Driver string
	// URL 为完整的连接串；sqlite 下为空时回退到 Path。
	URL    string
	Path   string
	SQLLog bool
}

// Open 根据驱动打开数据库连接，但不执行迁移。
func Open(opts Options) (*gorm.DB, error) {
	logLevel := logger.Warn
	if opts.SQLLog {
		logLevel = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		return openSQLite(opts, gormConfig)
	case DriverPostgres:
		dsn := strings.TrimSpace(opts.URL)
		if dsn == "" {
			return nil, errors.New("postgres driver requires a database url")
		}
		return gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func openSQLite(opts Options, gormConfig *gorm.Config) (*gorm.DB, error) {
	dsn := strings.TrimSpace(opts.URL)
	if dsn == "" {
		dsn = strings.TrimSpace(opts.Path)
		if dsn == "" {
			dsn = "blogly.db"
		}
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// sqlite 只允许单个写连接，同时保证 PRAGMA 对后续查询生效。
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate 自动迁移模式，为核心模型创建表。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&User{}, &Post{}, &Tag{}, &PostTag{})
}

// Reset 删除并重建全部数据表。
func Reset(gdb *gorm.DB) error {
	if err := gdb.Migrator().DropTable(&PostTag{}, &Post{}, &Tag{}, &User{}); err != nil {
		return err
	}
	return Migrate(gdb)
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
