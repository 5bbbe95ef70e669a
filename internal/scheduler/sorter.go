package scheduler

import (
	"sort"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

type ScoredTask struct {
	Task  domain.Task
	Score float64
}

// SortByScore scores every task once and returns them highest score first.
// The sort is stable, so equal scores keep their input order. The input
// slice is not modified.
func SortByScore(tasks []domain.Task, now time.Time) []ScoredTask {
	scored := make([]ScoredTask, len(tasks))
	for i, t := range tasks {
		scored[i] = ScoredTask{Task: t, Score: ScoreTask(t, now)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
