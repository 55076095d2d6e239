package compkey

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

var (
	tokenSeq        = atomic.NewUint64(0)
	tokensMinted    = atomic.NewUint64(0)
	tokensReclaimed = atomic.NewUint64(0)
)

// Stats is a point-in-time view of the interning state.
type Stats struct {
	// LiveNodes counts trie nodes reachable from the origin, origin
	// included. Entries whose weak key has died but whose cleanup has
	// not yet run are still counted.
	LiveNodes uint64
	// LiveTokens is minted minus reclaimed. Reclamation is observed
	// asynchronously, so this trails briefly after a collection.
	LiveTokens      uint64
	TokensMinted    uint64
	TokensReclaimed uint64
}

// ReadStats walks the trie under the lock and snapshots the counters.
func ReadStats() Stats {
	trieMu.Lock()
	defer trieMu.Unlock()
	minted := tokensMinted.Load()
	reclaimed := tokensReclaimed.Load()
	return Stats{
		LiveNodes:       countGC(origin),
		LiveTokens:      minted - reclaimed,
		TokensMinted:    minted,
		TokensReclaimed: reclaimed,
	}
}

func countGC(n *gcNode) uint64 {
	total := uint64(1)
	n.children.each(func(v interface{}) {
		total += countGC(v.(*gcNode))
	})
	if n.eternal != nil {
		total += countEternal(n.eternal)
	}
	return total
}

func countEternal(n *eternalNode) uint64 {
	total := uint64(1)
	for _, c := range n.children {
		total += countEternal(c)
	}
	return total
}

type statsCollector struct {
	liveNodes       *prometheus.Desc
	liveTokens      *prometheus.Desc
	tokensMinted    *prometheus.Desc
	tokensReclaimed *prometheus.Desc
}

// NewStatsCollector returns a prometheus.Collector exporting the
// interning state, for registration alongside the host application's
// other collectors.
func NewStatsCollector() prometheus.Collector {
	return &statsCollector{
		liveNodes: prometheus.NewDesc(
			"compkey_trie_nodes", "Trie nodes reachable from the origin.", nil, nil),
		liveTokens: prometheus.NewDesc(
			"compkey_live_tokens", "Identity tokens currently alive.", nil, nil),
		tokensMinted: prometheus.NewDesc(
			"compkey_tokens_minted_total", "Identity tokens minted since process start.", nil, nil),
		tokensReclaimed: prometheus.NewDesc(
			"compkey_tokens_reclaimed_total", "Identity tokens reclaimed since process start.", nil, nil),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveNodes
	ch <- c.liveTokens
	ch <- c.tokensMinted
	ch <- c.tokensReclaimed
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	s := ReadStats()
	ch <- prometheus.MustNewConstMetric(c.liveNodes, prometheus.GaugeValue, float64(s.LiveNodes))
	ch <- prometheus.MustNewConstMetric(c.liveTokens, prometheus.GaugeValue, float64(s.LiveTokens))
	ch <- prometheus.MustNewConstMetric(c.tokensMinted, prometheus.CounterValue, float64(s.TokensMinted))
	ch <- prometheus.MustNewConstMetric(c.tokensReclaimed, prometheus.CounterValue, float64(s.TokensReclaimed))
}
