package arena

// ThreatList accumulates the damage a unit took from each attacker.
// Owned by the arena goroutine; no locking.
type ThreatList struct {
	entries map[uint32]int
}

// NewThreatList creates an empty ThreatList.
func NewThreatList() *ThreatList {
	return &ThreatList{entries: make(map[uint32]int)}
}

// Add records amount of threat from attackerID. Non-positive amounts are
// ignored.
func (l *ThreatList) Add(attackerID uint32, amount int) {
	if amount <= 0 {
		return
	}
	l.entries[attackerID] += amount
}

// Get returns the threat recorded for attackerID.
func (l *ThreatList) Get(attackerID uint32) int {
	return l.entries[attackerID]
}

// Top returns the attacker with the highest threat that passes keep.
// Ties go to the lower id. Returns 0 if none qualifies.
func (l *ThreatList) Top(keep func(id uint32) bool) uint32 {
	var (
		bestID   uint32
		bestHate int
	)
	for id, hate := range l.entries {
		if keep != nil && !keep(id) {
			continue
		}
		if bestID == 0 || hate > bestHate || (hate == bestHate && id < bestID) {
			bestID, bestHate = id, hate
		}
	}
	return bestID
}

// Remove forgets attackerID.
func (l *ThreatList) Remove(attackerID uint32) {
	delete(l.entries, attackerID)
}

// Clear forgets everyone.
func (l *ThreatList) Clear() {
	clear(l.entries)
}

// Len returns the number of tracked attackers.
func (l *ThreatList) Len() int {
	return len(l.entries)
}
