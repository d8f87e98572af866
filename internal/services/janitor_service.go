package services

import (
	"Campus/internal/config"
	"Campus/internal/repository"
	"context"
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

var ErrCleaningInProgress = errors.New("cleaning is in progress")

type purgeTarget struct {
	name   string
	purger repository.Purger
}

// Janitor hard deletes soft-deleted records once they are older than the
// configured retention. Backends without soft delete are skipped.
type Janitor struct {
	targets       []purgeTarget
	configuration *config.Configuration
	logService    LogService
	cleaning      bool
	mutex         sync.Mutex
	cron          *cron.Cron
	now           func() time.Time
}

func NewJanitorService(
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	j := &Janitor{
		configuration: configuration,
		logService:    logService,
		cron:          cron.New(),
		now:           time.Now,
	}
	j.addTarget("students", studentRepo)
	j.addTarget("courses", courseRepo)
	return j
}

func (j *Janitor) addTarget(name string, repo any) {
	if purger, ok := repo.(repository.Purger); ok {
		j.targets = append(j.targets, purgeTarget{name: name, purger: purger})
	}
}

// RunCleanCycle purges every target synchronously and returns the number of
// removed records.
func (j *Janitor) RunCleanCycle(ctx context.Context) (int64, error) {
	if !j.begin() {
		return 0, ErrCleaningInProgress
	}
	defer j.finish()
	return j.clean(ctx, logrus.Fields{"job": "clean", "status": "start"})
}

func (j *Janitor) ForceStartCleanCycle() error {
	if !j.begin() {
		return ErrCleaningInProgress
	}

	go func() {
		defer j.finish()
		_, _ = j.clean(context.Background(), logrus.Fields{"job": "clean", "status": "forced"})
	}()

	return nil
}

func (j *Janitor) StartCleanCycle() error {
	cleanConfig := j.configuration.Server.CleanConfig
	if !cleanConfig.Enabled {
		j.logService.Log.Debug("cleaning job disabled")
		return nil
	}
	if len(j.targets) == 0 {
		j.logService.Log.WithField("backend", j.configuration.Database.Backend).
			Info("backend keeps no deleted records, cleaning job not scheduled")
		return nil
	}

	_, err := j.cron.AddFunc(cleanConfig.Schedule, func() {
		if !j.begin() {
			return
		}
		defer j.finish()
		_, _ = j.clean(context.Background(), logrus.Fields{
			"job":    "clean",
			"status": "start",
			"cron":   cleanConfig.Schedule,
		})
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start cleaning job")
		return fmt.Errorf("schedule clean job: %w", err)
	}
	j.cron.Start()
	return nil
}

// StopClean stops the scheduler and waits for a running scheduled job.
func (j *Janitor) StopClean() {
	<-j.cron.Stop().Done()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "stopped",
	}).Info("Janitor clean stopped")
}

// Pending counts the records the next run would purge.
func (j *Janitor) Pending(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.configuration.Server.CleanConfig.Retention)
	var total int64
	for _, target := range j.targets {
		count, err := target.purger.Purgeable(ctx, cutoff)
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", target.name, err)
		}
		total += count
	}
	return total, nil
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) begin() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.cleaning {
		return false
	}
	j.cleaning = true
	return true
}

func (j *Janitor) finish() {
	j.mutex.Lock()
	j.cleaning = false
	j.mutex.Unlock()
}

func (j *Janitor) clean(ctx context.Context, fields logrus.Fields) (int64, error) {
	cutoff := j.now().Add(-j.configuration.Server.CleanConfig.Retention)
	j.logService.Log.WithFields(fields).WithField("cutoff", cutoff).Debug("cleaning job started")

	var total int64
	var errs []error
	for _, target := range j.targets {
		count, err := target.purger.Purge(ctx, cutoff)
		if err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":    "clean",
				"status": "error",
				"table":  target.name,
				"error":  err.Error(),
			}).Error("Failed to purge deleted records")
			errs = append(errs, fmt.Errorf("purge %s: %w", target.name, err))
			continue
		}
		total += count
	}

	if total > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "clean",
			"status": "success",
			"count":  total,
		}).Info("cleaning job finished")
	}
	return total, errors.Join(errs...)
}
