package scanner

import (
	"context"
	"sync"
	"time"
)

// Task периодическая задача
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner запускает задачи по таймеру до отмены контекста
type Runner struct {
	tasks  []Task
	logger Logger
	wg     sync.WaitGroup
}

// NewRunner создает раннер задач
func NewRunner(logger Logger, tasks ...Task) *Runner {
	return &Runner{tasks: tasks, logger: logger}
}

// Start запускает каждую задачу в своей горутине и сразу возвращается
func (r *Runner) Start(ctx context.Context) {
	for _, task := range r.tasks {
		if task.Interval <= 0 {
			r.logger.Warn("Runner: task %s has no interval, skipped", task.Name)
			continue
		}
		r.wg.Add(1)
		go r.loop(ctx, task)
	}
}

// Wait блокируется, пока все задачи не остановятся
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, task Task) {
	defer r.wg.Done()

	r.logger.Info("Runner: task %s started, interval %s", task.Name, task.Interval)

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Runner: task %s stopped", task.Name)
			return
		case <-ticker.C:
			if err := task.Run(ctx); err != nil {
				r.logger.Error("Runner: task %s failed: %v", task.Name, err)
			}
		}
	}
}
