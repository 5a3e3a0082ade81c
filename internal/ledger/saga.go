package ledger

import (
	"fmt"
)

// step is one forward action of a multi-step write, paired with the
// compensation that undoes it. A nil compensation marks a step that
// needs no undo.
type step struct {
	name       string
	run        func() error
	compensate func() error
}

// saga executes steps sequentially against a store that offers no
// multi-statement atomicity. When a step fails, the compensations of
// all previously completed steps run in reverse order; this is the one
// rollback path every multi-row write in this package goes through.
type saga struct {
	completed []step
}

// execute runs the steps in order. On failure it rolls back and returns
// the error of the failed step, or a ConsistencyError when a
// compensation failed as well.
func (s *saga) execute(steps ...step) error {
	for _, st := range steps {
		if err := st.run(); err != nil {
			return s.rollback(&StageError{Stage: st.name, Err: err})
		}

		s.completed = append(s.completed, st)
	}

	return nil
}

// rollback undoes all completed steps in reverse order. An unlinked
// orphan row is worse than no row, so compensation failures are
// escalated to a ConsistencyError instead of being swallowed.
func (s *saga) rollback(cause error) error {
	for i := len(s.completed) - 1; i >= 0; i-- {
		st := s.completed[i]
		if st.compensate == nil {
			continue
		}

		if err := st.compensate(); err != nil {
			return &ConsistencyError{
				Stage:           st.name,
				Err:             cause,
				CompensationErr: fmt.Errorf("undo %s: %w", st.name, err),
			}
		}
	}

	return cause
}
