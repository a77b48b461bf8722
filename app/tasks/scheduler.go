package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// taskTimeout bounds a single task run so one stalled tick can never block
// shutdown indefinitely.
const taskTimeout = 5 * time.Minute

type Task interface {
	Name() string
	Run(ctx context.Context) error
}

type schedule struct {
	task     Task
	interval time.Duration
	daily    bool
	hour     int
	minute   int
}

// Scheduler drives the periodic background tasks. Each task runs on its own
// goroutine, one run at a time: a tick that is still executing when the next
// one comes due simply delays it, so a task never overlaps itself.
type Scheduler struct {
	schedules []schedule
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Every registers a task to run once per interval, starting with an
// immediate run at startup.
func (s *Scheduler) Every(interval time.Duration, task Task) {
	s.schedules = append(s.schedules, schedule{task: task, interval: interval})
}

// DailyAt registers a task to run once per day at the given UTC time.
func (s *Scheduler) DailyAt(hour, minute int, task Task) {
	s.schedules = append(s.schedules, schedule{task: task, daily: true, hour: hour, minute: minute})
}

func (s *Scheduler) Start() {
	for _, sched := range s.schedules {
		s.wg.Add(1)
		go s.loop(sched)
	}
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) loop(sched schedule) {
	defer s.wg.Done()

	if sched.daily {
		for {
			wait := untilNextDaily(time.Now().UTC(), sched.hour, sched.minute)
			slog.Debug("Task scheduled", "task", sched.task.Name(), "in", wait.String())

			timer := time.NewTimer(wait)
			select {
			case <-s.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				s.runTask(sched.task)
			}
		}
	}

	ticker := time.NewTicker(sched.interval)
	defer ticker.Stop()

	s.runTask(sched.task)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runTask(sched.task)
		}
	}
}

func (s *Scheduler) runTask(task Task) {
	ctx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	started := time.Now()
	if err := task.Run(ctx); err != nil {
		slog.Error("Task run failed", "task", task.Name(), "error", err)
		return
	}
	slog.Debug("Task run finished", "task", task.Name(), "duration", time.Since(started).String())
}

// untilNextDaily computes the wait until the next occurrence of hour:minute
// UTC, strictly in the future so a run at exactly the scheduled instant does
// not double-fire.
func untilNextDaily(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
