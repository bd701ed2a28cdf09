package bridge

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/puzpuzpuz/xsync/v3"
)

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out exclusive locks on named keys. Entries are reference counted and
// dropped when the last holder releases them.
type Locker struct {
	locks *xsync.MapOf[string, *keyLock]
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: xsync.NewMapOf[string, *keyLock]()}
}

// Lock acquires all keys in sorted order and returns a function releasing them.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	keys = dedupSorted(keys)
	held := make([]*keyLock, 0, len(keys))
	for _, k := range keys {
		kl, _ := l.locks.Compute(k, func(old *keyLock, loaded bool) (*keyLock, bool) {
			if !loaded {
				old = &keyLock{}
			}
			old.refs++
			return old, false
		})
		kl.mu.Lock()
		held = append(held, kl)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				l.release(keys[i])
			}
		})
	}
}

func (l *Locker) release(key string) {
	l.locks.Compute(key, func(old *keyLock, loaded bool) (*keyLock, bool) {
		if !loaded {
			return nil, true
		}
		old.refs--
		return old, old.refs == 0
	})
}

// Size returns the number of keys currently held or waited on.
func (l *Locker) Size() int {
	return l.locks.Size()
}

func dedupSorted(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return out[:n]
}

// AccountKey names the balance of account on ledger.
func AccountKey(ledger string, account common.Address) string {
	return fmt.Sprintf("account:%s:%s", ledger, strings.ToLower(account.Hex()))
}

// NonceKey names one nonce slot of a bridge instance.
func NonceKey(bridgeID string, nonce uint64) string {
	return fmt.Sprintf("nonce:%s:%d", bridgeID, nonce)
}
