// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket namespaces keys by prefixing them, so state slots, contract code and ledger
// metadata share one store.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	key := make([]byte, 0, len(b)+len(k))
	return append(append(key, b...), k...)
}

func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

func (b Bucket) NewPutter(dst Putter) Putter {
	return &bucketPutter{b, dst}
}

type bucketGetter struct {
	bucket Bucket
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.bucket.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.bucket.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	bucket Bucket
	dst    Putter
}

func (p *bucketPutter) Put(key, value []byte) error { return p.dst.Put(p.bucket.key(key), value) }
func (p *bucketPutter) Delete(key []byte) error     { return p.dst.Delete(p.bucket.key(key)) }
