package database

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// zapWriter routes GORM's own log lines into the debug log.
type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Debugf(format, args...)
}

func NewDatabase(dbPath string, logger *zap.SugaredLogger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.Named("database")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.New(zapWriter{logger: logger}, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening run ledger %s", dbPath)
	}

	err = db.AutoMigrate(
		&entities.ImportRun{},
		&entities.EntryOutcome{},
	)
	if err != nil {
		return nil, errors.Wrap(err, "migrating run ledger")
	}

	logger.Debugf("Run ledger initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
