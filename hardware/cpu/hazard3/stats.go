package hazard3

// Stats accumulates per-core execution counters, mirrored from the
// mnemonic/cycle/branch bookkeeping a debugger or inspector panel reads
// off a running core.
type Stats struct {
	ExecutedInstructions map[string]uint64
	ExecutedCycles       uint64
	BranchPredicts       uint64
	MissPredicts         uint64
}

func newStats() Stats {
	return Stats{ExecutedInstructions: make(map[string]uint64)}
}

func (s *Stats) recordRetired(mnemonic string) {
	s.ExecutedInstructions[mnemonic]++
	s.ExecutedCycles++
}

// branchPredictor is a single-entry last-branch-taken predictor: it
// remembers only the pc of the most recently taken branch, predicts taken
// for a branch at that pc and not taken for any other, and flags a miss
// whenever the outcome disagrees.
type branchPredictor struct {
	lastBranchTaken    uint32
	lastBranchTakenSet bool
}

func (p *branchPredictor) missPredicted(pc uint32, taken bool) bool {
	if taken {
		if p.lastBranchTakenSet && p.lastBranchTaken == pc {
			return false
		}
		p.lastBranchTaken, p.lastBranchTakenSet = pc, true
		return true
	}

	if p.lastBranchTakenSet && p.lastBranchTaken == pc {
		p.lastBranchTakenSet = false
		return true
	}
	return false
}

func (s *Stats) recordBranch(miss bool) {
	s.BranchPredicts++
	if miss {
		s.MissPredicts++
	}
}
