package services

import (
	"Campus/internal/config"
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type LogService struct {
	Log *logrus.Logger
}

func NewLogService(configuration *config.Configuration) (LogService, error) {
	logConfig := configuration.Server.LogConfig
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(logConfig.Level))
	if err != nil {
		return LogService{}, err
	}
	log.SetLevel(level)

	switch logConfig.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return LogService{}, fmt.Errorf("unknown log format %q", logConfig.Format)
	}

	out, err := logOutput(logConfig)
	if err != nil {
		return LogService{}, err
	}
	log.SetOutput(out)
	return LogService{Log: log}, nil
}

// NewLogServiceWithLogger wraps an already configured logger.
func NewLogServiceWithLogger(log *logrus.Logger) LogService {
	return LogService{Log: log}
}

func logOutput(logConfig config.LogConfig) (io.Writer, error) {
	switch logConfig.Output {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		if logConfig.LogPath == "" {
			return nil, fmt.Errorf("file output requires logPath to be set")
		}
		logFolder := strings.TrimRight(logConfig.LogPath, "/")
		if err := os.MkdirAll(logFolder, 0755); err != nil {
			return nil, err
		}
		logName := fmt.Sprintf("%s-%s.log", "campus", time.Now().Format("2006-01-02"))
		return os.OpenFile(filepath.Join(logFolder, logName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	}
	return nil, fmt.Errorf("unknown log output %q", logConfig.Output)
}

// ProvideLogger exposes the configured logger to packages that cannot depend
// on services.
func ProvideLogger(logService LogService) *logrus.Logger {
	return logService.Log
}
