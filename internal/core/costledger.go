package core

// CostLedger converts DRAM byte traffic into stall cycles, kept separate
// from StepOnce so invariant tests can run the functional pipeline without
// any cost-model knowledge. It shadows compute/load credits the way an
// overlap-aware cost model would: a load's cycles can be hidden behind
// compute already in flight.
type CostLedger struct {
	BwBytesPerCycle int64
	FixedLatency    int64

	computeCredit int64
	totalCycles   int64
}

// NewCostLedger returns a ledger configured with the DRAM bandwidth model.
func NewCostLedger(bwBytesPerCycle, fixedLatency int64) *CostLedger {
	return &CostLedger{BwBytesPerCycle: bwBytesPerCycle, FixedLatency: fixedLatency}
}

// dramCycles returns ceil(bytes/bw) + fixed_latency for a transfer of n
// bytes, the accounting formula used throughout the DRAM subsystem.
func (l *CostLedger) dramCycles(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	cycles := (bytes + l.BwBytesPerCycle - 1) / l.BwBytesPerCycle
	return cycles + l.FixedLatency
}

// ChargeLoad accounts a DRAM read of n bytes, hiding as much of its cost as
// possible behind accumulated compute credit before adding stall cycles.
func (l *CostLedger) ChargeLoad(bytes int64) {
	cost := l.dramCycles(bytes)
	hidden := cost
	if hidden > l.computeCredit {
		hidden = l.computeCredit
	}
	l.computeCredit -= hidden
	stall := cost - hidden
	l.totalCycles += stall
}

// ChargeCompute accounts n cycles of compute, which can hide a future
// load's latency.
func (l *CostLedger) ChargeCompute(cycles int64) {
	l.totalCycles += cycles
	l.computeCredit += cycles
}

// TotalCycles reports the accumulated cycle count.
func (l *CostLedger) TotalCycles() int64 {
	return l.totalCycles
}
