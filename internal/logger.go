package internal

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"ipay/entity"
	"ipay/services"
)

// Logger writes categorized log lines to stdout and, when a database is
// attached, persists warnings and errors.
type Logger struct {
	category string
	database services.Database
	log      *logrus.Logger
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return &Logger{
		category: category,
		database: database,
		log:      log,
	}
}

func (l *Logger) entry() *logrus.Entry {
	return l.log.WithField("category", l.category)
}

func (l *Logger) Debug(text string) {
	l.entry().Debug(text)
}

func (l *Logger) Info(text string) {
	l.entry().Info(text)
}

func (l *Logger) Warn(text string) {
	l.entry().Warn(text)
	l.persist(logrus.WarnLevel, text)
}

func (l *Logger) Error(text string, err error) {
	if err != nil {
		l.entry().WithError(err).Error(text)
		text = text + ": " + err.Error()
	} else {
		l.entry().Error(text)
	}
	l.persist(logrus.ErrorLevel, text)
}

func (l *Logger) persist(level logrus.Level, text string) {
	if l.database == nil {
		return
	}
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level.String(),
		Category: l.category,
		Text:     text,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.database.WriteLogMessage(ctx, message); err != nil {
		l.entry().WithError(err).Warn("write log message")
	}
}
