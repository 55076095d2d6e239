/*
Package compkey provides structural (value-based) equality over
composite keys in a language whose containers compare keys by ordinary
Go equality. A CompositeKey is constructed from an ordered sequence of
heterogeneous values; two keys built from equal sequences compare Equal
even though they are distinct objects.

	a, b := new(int), new(int)
	k1 := compkey.MustOf(a, 1, b)
	k2 := compkey.MustOf(a, 1, b)
	compkey.Equal(k1, k2) // true

How it works

Every key is assigned an identity token by a process-wide interning
trie. Components with referential identity (pointers, nested keys) are
consumed on a first pass through weakly-keyed nodes; primitive values
are replayed positionally on a second pass through strongly-keyed
nodes. Token equality is exactly structural equality of the input
sequence, and length and position are part of identity: [a, b] and
[a, b, c] never meet, nor do [a, 1] and [1, a].

Memory

The trie holds identity-bearing components and identity tokens only
weakly; primitive components are kept as strong keys. When
every handle for a key is dropped and its identity-bearing components
become unreachable, the nodes that were interned for it are purged.
ReadStats exposes the live node count, and NewStatsCollector exports it
for Prometheus.

Containers

Map and Set are façades that accept a Projection deriving a lookup key
from a user value; when the projection yields a composite key, its
token becomes the real container key, so structurally equal values hit
the same entry while iteration still yields the original keys. Record
and Tuple are frozen aggregates that build and cache their own
composite keys, and Canonicalize plugs them straight into a container.

Concurrency

Key construction is safe for concurrent use; one mutex serializes all
trie state against the runtime's reclamation callbacks. The container
façades, like the built-in map, are not synchronized.
*/
package compkey
