package core

// Snapshot is a frozen copy of stats taken at aura application, used
// by subsequent periodic ticks when the owning aura is flagged
// snapshots_stats (spec.md §4.3).
type Snapshot struct {
	CritChance     float64
	CritMultiplier float64
	AttackPower    float64
	SpellPower     float64
	AllDamageMultiplier float64
}

// snapshotArena is a dense, append-only store of Snapshots on a Unit,
// indexed by SnapshotId. Id 0 is reserved to mean "no snapshot".
type snapshotArena struct {
	entries []Snapshot
}

func (a *snapshotArena) Take(s Snapshot) SnapshotId {
	a.entries = append(a.entries, s)
	return SnapshotId(len(a.entries))
}

func (a *snapshotArena) Get(id SnapshotId) (Snapshot, bool) {
	if id == NoSnapshot || int(id) > len(a.entries) {
		return Snapshot{}, false
	}
	return a.entries[id-1], true
}
