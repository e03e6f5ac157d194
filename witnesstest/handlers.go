package witnesstest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) getLatestCheckpoint(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	cp, found := s.tree.latest(chainID)
	if !found {
		writeNotFound(w, "No checkpoint found for chain "+strconv.FormatInt(chainID, 10))
		return
	}
	WriteJSON(w, http.StatusOK, cp)
}

func (s *Server) getLatestCheckpointForAllChains(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, s.tree.latestAll())
}

func (s *Server) getEarliestCheckpointCoveringLeafIndex(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	leafIndex, issue := parseUint("leafIndex", r.URL.Query().Get("leafIndex"))
	if issue != nil {
		writeValidation(w, *issue)
		return
	}
	cp, found := s.tree.find(chainID, func(cp Checkpoint) bool { return cp.size() > leafIndex })
	if !found {
		writeNotFound(w, "No checkpoint covers leaf index "+strconv.FormatUint(leafIndex, 10))
		return
	}
	WriteJSON(w, http.StatusOK, cp)
}

func (s *Server) getCheckpointByTransactionHash(w http.ResponseWriter, r *http.Request) {
	txHash := r.URL.Query().Get("txHash")
	if txHash == "" {
		writeValidation(w, required("txHash"))
		return
	}
	cp, found := s.tree.findTx(txHash)
	if !found {
		writeNotFound(w, "No checkpoint found for transaction "+txHash)
		return
	}
	WriteJSON(w, http.StatusOK, cp)
}

func (s *Server) getCheckpointByTimestamp(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	ts, issue := parseUint("timestamp", r.URL.Query().Get("timestamp"))
	if issue != nil {
		writeValidation(w, *issue)
		return
	}
	cp, found := s.tree.find(chainID, func(cp Checkpoint) bool { return cp.Timestamp >= int64(ts) })
	if !found {
		writeNotFound(w, "No checkpoint at or after timestamp "+strconv.FormatUint(ts, 10))
		return
	}
	WriteJSON(w, http.StatusOK, cp)
}

func (s *Server) getLeafIndexByHash(w http.ResponseWriter, r *http.Request) {
	leafHash, idx, ok := s.knownLeaf(w, r.URL.Query().Get("leafHash"))
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"leafHash":  leafHash,
		"leafIndex": strconv.FormatUint(idx, 10),
	})
}

func (s *Server) getTimestampByLeafHash(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	leafHash, idx, ok := s.knownLeaf(w, r.URL.Query().Get("leafHash"))
	if !ok {
		return
	}
	cp, found := s.tree.find(chainID, func(cp Checkpoint) bool { return cp.size() > idx })
	if !found {
		writeNotFound(w, "Leaf "+leafHash+" has not been checkpointed yet")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"timestamp": cp.Timestamp})
}

func (s *Server) getNodeHashByID(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var issues []IssueEntry
	level, issue := parseUint("level", q.Get("level"))
	if issue != nil {
		issues = append(issues, *issue)
	}
	index, issue := parseUint("index", q.Get("index"))
	if issue != nil {
		issues = append(issues, *issue)
	}
	if len(issues) > 0 {
		writeValidation(w, issues...)
		return
	}
	if level > 63 || index >= (s.tree.size()+(1<<level)-1)>>level {
		writeNotFound(w, "Node not found")
		return
	}
	l, i := strconv.FormatUint(level, 10), strconv.FormatUint(index, 10)
	WriteJSON(w, http.StatusOK, map[string]any{"level": l, "index": i, "hash": nodeHash(l, i)})
}

func (s *Server) getProofForLeafHash(w http.ResponseWriter, r *http.Request) {
	chainID, ok := chainParam(w, r)
	if !ok {
		return
	}
	leafHash, idx, ok := s.knownLeaf(w, r.URL.Query().Get("leafHash"))
	if !ok {
		return
	}

	var size uint64
	if raw := r.URL.Query().Get("targetTreeSize"); raw != "" {
		n, issue := parseUint("targetTreeSize", raw)
		if issue != nil {
			writeValidation(w, *issue)
			return
		}
		size = n
	} else {
		cp, found := s.tree.latest(chainID)
		if !found {
			writeNotFound(w, "No checkpoint found for chain "+strconv.FormatInt(chainID, 10))
			return
		}
		size = cp.size()
	}
	if size <= idx || size > s.tree.size() {
		writeValidation(w, invalid("targetTreeSize", "Target tree size must cover the leaf and not exceed the tree"))
		return
	}

	left, right := siblings(idx, size)
	WriteJSON(w, http.StatusOK, map[string]any{
		"leafHash":       leafHash,
		"leafIndex":      strconv.FormatUint(idx, 10),
		"targetTreeSize": strconv.FormatUint(size, 10),
		"targetRootHash": s.tree.root(size),
		"leftHashes":     left,
		"rightHashes":    right,
	})
}

func (s *Server) getTreeState(w http.ResponseWriter, _ *http.Request) {
	size := s.tree.size()
	out := map[string]any{
		"numLeaves": strconv.FormatUint(size, 10),
		"rootHash":  s.tree.root(size),
	}
	if cp, found := s.tree.latest(DefaultChainID); found {
		out["checkpointedTreeSize"] = cp.TreeSize
		out["checkpointedRootHash"] = cp.RootHash
	}
	WriteJSON(w, http.StatusOK, out)
}

type proofBody struct {
	LeftHashes     []string `json:"leftHashes"`
	RightHashes    []string `json:"rightHashes"`
	TargetRootHash string   `json:"targetRootHash"`
	LeafHash       string   `json:"leafHash"`
	LeafIndex      string   `json:"leafIndex"`
}

// postProof accepts a proof previously issued by getProofForLeafHash.
func (s *Server) postProof(w http.ResponseWriter, r *http.Request) {
	var p proofBody
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeValidation(w, invalid("body", "Expected a JSON object"))
		return
	}
	var issues []IssueEntry
	if p.LeafHash == "" {
		issues = append(issues, required("leafHash"))
	}
	if p.TargetRootHash == "" {
		issues = append(issues, required("targetRootHash"))
	}
	idx, issue := parseUint("leafIndex", p.LeafIndex)
	if issue != nil {
		issues = append(issues, *issue)
	}
	if len(issues) > 0 {
		writeValidation(w, issues...)
		return
	}

	known, found := s.tree.leafIndex(p.LeafHash)
	valid := found && known == idx && s.matchesSomeRoot(p.TargetRootHash, idx)
	WriteJSON(w, http.StatusOK, map[string]any{"success": valid})
}

func (s *Server) matchesSomeRoot(rootHash string, leafIndex uint64) bool {
	for size := leafIndex + 1; size <= s.tree.size(); size++ {
		if strings.EqualFold(s.tree.root(size), rootHash) {
			return true
		}
	}
	return false
}

func (s *Server) postLeafHash(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LeafHash string `json:"leafHash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidation(w, invalid("body", "Expected a JSON object"))
		return
	}
	if body.LeafHash == "" {
		writeValidation(w, required("leafHash"))
		return
	}
	if !isHexHash(body.LeafHash) {
		writeValidation(w, invalid("leafHash", "Expected a 0x-prefixed hex string"))
		return
	}
	idx, _ := s.tree.insert(body.LeafHash)
	WriteJSON(w, http.StatusOK, map[string]any{
		"leafHash":  body.LeafHash,
		"leafIndex": strconv.FormatUint(idx, 10),
	})
}

// knownLeaf validates leafHash and resolves its index, writing the error response when it cannot.
func (s *Server) knownLeaf(w http.ResponseWriter, leafHash string) (string, uint64, bool) {
	if leafHash == "" {
		writeValidation(w, required("leafHash"))
		return "", 0, false
	}
	idx, found := s.tree.leafIndex(leafHash)
	if !found {
		writeNotFound(w, "Leaf hash "+leafHash+" not found")
		return "", 0, false
	}
	return leafHash, idx, true
}

// chainParam parses chainId, defaulting to DefaultChainID when absent.
func chainParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("chainId")
	if raw == "" {
		return DefaultChainID, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, invalid("chainId", "Expected a positive integer"))
		return 0, false
	}
	return id, true
}

func isHexHash(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) == 2 {
		return false
	}
	for _, c := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
