package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/RogerChu8/voiceRecorder-app/internal/config"
	"github.com/RogerChu8/voiceRecorder-app/internal/journal"
	"github.com/RogerChu8/voiceRecorder-app/internal/logging"
	"github.com/RogerChu8/voiceRecorder-app/internal/project"
)

// commandContext lazily resolves the shared dependencies of every command:
// configuration, the structured logger, and the session journal.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		outputs := []string{"stderr"}
		if cfg.Paths.LogDir != "" {
			outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "voicerec.log"))
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: outputs,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.LogDir) == "" {
		return nil, fmt.Errorf("journal requires paths.log_dir to be configured")
	}
	return journal.Open(filepath.Join(cfg.Paths.LogDir, "journal.db"))
}

// openSession locks the project directory and resumes the session from its
// files. The caller must Unlock the returned lock.
func (c *commandContext) openSession(dir string) (*project.Session, *flock.Flock, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	lock, err := project.LockDir(dir)
	if err != nil {
		return nil, nil, err
	}
	session, err := project.LoadDir(dir, logger)
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, err
	}
	return session, lock, nil
}
