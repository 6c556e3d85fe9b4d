package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json, text
	Output     string `json:"output"` // stdout, stderr, file path
	TimeFormat string `json:"time_format"`
	Caller     bool   `json:"caller"`
}

func NewLogger(config *Config) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: config.TimeFormat,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: config.TimeFormat,
			FullTimestamp:   true,
		})
	}

	switch config.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
	}

	logger.SetReportCaller(config.Caller)

	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}, nil
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) WithUserID(userID primitive.ObjectID) *Logger {
	return l.WithField("user_id", userID.Hex())
}

func (l *Logger) WithDonationID(donationID primitive.ObjectID) *Logger {
	return l.WithField("donation_id", donationID.Hex())
}

func (l *Logger) WithCouponCode(code string) *Logger {
	return l.WithField("coupon_code", code)
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) Debug(msg string)                          { l.logger.WithFields(l.fields).Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logger.WithFields(l.fields).Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.logger.WithFields(l.fields).Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logger.WithFields(l.fields).Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.logger.WithFields(l.fields).Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logger.WithFields(l.fields).Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.logger.WithFields(l.fields).Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logger.WithFields(l.fields).Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                          { l.logger.WithFields(l.fields).Fatal(msg) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.logger.WithFields(l.fields).Fatalf(format, args...) }

// LogPaymentEvent records a structured payment lifecycle event.
func (l *Logger) LogPaymentEvent(gateway, event, reference string, amount float64) {
	l.WithFields(map[string]interface{}{
		"gateway":   gateway,
		"event":     event,
		"reference": reference,
		"amount":    amount,
		"type":      "payment_event",
	}).Info("Payment event occurred")
}

// LogCouponEvent records a structured coupon lifecycle event.
func (l *Logger) LogCouponEvent(code, event string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"coupon_code": code,
		"event":       event,
		"type":        "coupon_event",
	}
	for k, v := range details {
		fields[k] = v
	}
	l.WithFields(fields).Info("Coupon event occurred")
}

func (l *Logger) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}
