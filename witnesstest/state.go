package witnesstest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Checkpoint is a recorded tree root posted to a chain.
type Checkpoint struct {
	ChainID     int64  `json:"chainId"`
	TreeSize    string `json:"treeSize"`
	RootHash    string `json:"rootHash"`
	TxHash      string `json:"txHash"`
	BlockNumber string `json:"blockNumber"`
	Timestamp   int64  `json:"timestamp"`
}

func (cp Checkpoint) size() uint64 {
	n, _ := strconv.ParseUint(cp.TreeSize, 10, 64)
	return n
}

// tree is the in-memory state served by Server. Hashes it produces are
// deterministic but opaque; they are not Merkle roots.
type tree struct {
	mu          sync.RWMutex
	leaves      []string
	index       map[string]uint64
	checkpoints map[int64][]Checkpoint
}

func newTree() *tree {
	return &tree{
		index:       make(map[string]uint64),
		checkpoints: make(map[int64][]Checkpoint),
	}
}

// insert appends leafHash and returns its index; duplicates return the existing index.
func (t *tree) insert(leafHash string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := strings.ToLower(leafHash)
	if idx, ok := t.index[key]; ok {
		return idx, false
	}
	idx := uint64(len(t.leaves))
	t.leaves = append(t.leaves, leafHash)
	t.index[key] = idx
	return idx, true
}

func (t *tree) leafIndex(leafHash string) (uint64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx, ok := t.index[strings.ToLower(leafHash)]
	return idx, ok
}

func (t *tree) size() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return uint64(len(t.leaves))
}

// checkpoint records the current tree on chainID at timestamp.
func (t *tree) checkpoint(chainID, timestamp int64) Checkpoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.leaves))
	cps := t.checkpoints[chainID]
	cp := Checkpoint{
		ChainID:     chainID,
		TreeSize:    strconv.FormatUint(size, 10),
		RootHash:    t.rootLocked(size),
		TxHash:      opaqueHash("tx", strconv.FormatInt(chainID, 10), strconv.Itoa(len(cps))),
		BlockNumber: strconv.Itoa(1000 + len(cps)),
		Timestamp:   timestamp,
	}
	t.checkpoints[chainID] = append(cps, cp)
	return cp
}

func (t *tree) root(size uint64) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rootLocked(size)
}

func (t *tree) rootLocked(size uint64) string {
	if size > uint64(len(t.leaves)) {
		size = uint64(len(t.leaves))
	}
	return opaqueHash(append([]string{"root"}, t.leaves[:size]...)...)
}

func (t *tree) latest(chainID int64) (Checkpoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cps := t.checkpoints[chainID]
	if len(cps) == 0 {
		return Checkpoint{}, false
	}
	return cps[len(cps)-1], true
}

func (t *tree) latestAll() map[string]Checkpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Checkpoint, len(t.checkpoints))
	for chainID, cps := range t.checkpoints {
		if len(cps) > 0 {
			out[strconv.FormatInt(chainID, 10)] = cps[len(cps)-1]
		}
	}
	return out
}

// find returns the first checkpoint on chainID for which match is true.
func (t *tree) find(chainID int64, match func(Checkpoint) bool) (Checkpoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, cp := range t.checkpoints[chainID] {
		if match(cp) {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

func (t *tree) findTx(txHash string) (Checkpoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, cps := range t.checkpoints {
		for _, cp := range cps {
			if strings.EqualFold(cp.TxHash, txHash) {
				return cp, true
			}
		}
	}
	return Checkpoint{}, false
}

// siblings returns opaque left and right hash lists for leafIndex in a tree of size.
func siblings(leafIndex, size uint64) (left, right []string) {
	left, right = []string{}, []string{}
	level := 0
	for idx, width := leafIndex, size; width > 1; idx, width = idx/2, (width+1)/2 {
		if idx%2 == 1 {
			left = append(left, opaqueHash("node", strconv.Itoa(level), strconv.FormatUint(idx-1, 10)))
		} else if idx+1 < width {
			right = append(right, opaqueHash("node", strconv.Itoa(level), strconv.FormatUint(idx+1, 10)))
		}
		level++
	}
	return left, right
}

func opaqueHash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "0x" + hex.EncodeToString(sum[:])
}

func nodeHash(level, index string) string {
	return opaqueHash("node", level, index)
}

func parseUint(field, raw string) (uint64, *IssueEntry) {
	if raw == "" {
		issue := required(field)
		return 0, &issue
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		issue := invalid(field, fmt.Sprintf("Expected a non-negative integer, received %q", raw))
		return 0, &issue
	}
	return n, nil
}
