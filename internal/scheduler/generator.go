package scheduler

import (
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
)

const (
	DefaultTotalMinutes = 180
	DefaultBlockMinutes = 50
	// MinBlockMinutes is the shortest block a task gets unless the day's
	// budget runs out first.
	MinBlockMinutes = 25
	BreakMinutes    = 10
	// StartGranularity is the boundary the first block is aligned to.
	StartGranularity = 5 * time.Minute
)

type BlockOptions struct {
	TotalMinutes int
	BlockMinutes int
	Now          time.Time
}

func (o BlockOptions) withDefaults() BlockOptions {
	if o.TotalMinutes <= 0 {
		o.TotalMinutes = DefaultTotalMinutes
	}
	if o.BlockMinutes <= 0 {
		o.BlockMinutes = DefaultBlockMinutes
	}
	return o
}

// PlannedBlock is a generated interval that has not been stored yet.
type PlannedBlock struct {
	TaskID    string
	TaskTitle string
	Start     time.Time
	End       time.Time
}

func (b PlannedBlock) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// GenerateDailyBlocks packs tasks, best score first, into back-to-back
// blocks separated by BreakMinutes, starting at Now rounded up to
// StartGranularity. DONE tasks are skipped. The sum of block minutes never
// exceeds TotalMinutes.
func GenerateDailyBlocks(tasks []domain.Task, opts BlockOptions) []PlannedBlock {
	opts = opts.withDefaults()

	eligible := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEligible() {
			eligible = append(eligible, t)
		}
	}

	blocks := []PlannedBlock{}
	cursor := RoundUp(opts.Now, StartGranularity)
	remaining := opts.TotalMinutes

	for _, st := range SortByScore(eligible, opts.Now) {
		if remaining <= 0 {
			break
		}
		est := blockLength(st.Task.EstimatedMinutes, opts.BlockMinutes)
		if est > remaining {
			est = remaining
		}
		end := cursor.Add(time.Duration(est) * time.Minute)
		blocks = append(blocks, PlannedBlock{
			TaskID:    st.Task.ID,
			TaskTitle: st.Task.Title,
			Start:     cursor,
			End:       end,
		})
		cursor = end.Add(BreakMinutes * time.Minute)
		remaining -= est
	}
	return blocks
}

// blockLength caps a task's estimate at blockMinutes and raises it to at
// least MinBlockMinutes. A missing estimate takes the full block.
func blockLength(estimated, blockMinutes int) int {
	if estimated <= 0 {
		estimated = blockMinutes
	}
	est := estimated
	if est > blockMinutes {
		est = blockMinutes
	}
	if est < MinBlockMinutes {
		est = MinBlockMinutes
	}
	return est
}

// RoundUp returns t, or the next multiple of d after it. Multiples are
// measured from the Unix epoch.
func RoundUp(t time.Time, d time.Duration) time.Time {
	if d <= 0 {
		return t
	}
	rem := time.Duration(t.UnixNano() % int64(d))
	if rem == 0 {
		return t
	}
	if rem < 0 {
		rem += d
	}
	return t.Add(d - rem)
}
