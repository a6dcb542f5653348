package kvfakes

import (
	"sync"

	"github.com/dealerdash/dashboard-gateway/session"
)

var _ session.KeyValue = (*FakeKV)(nil)

type FakeKV struct {
	values map[string]string
	lock   sync.RWMutex

	// SetErr and DeleteErr, when non-nil, are returned by the corresponding
	// operations to simulate a failing store.
	SetErr    error
	DeleteErr error
}

func NewFakeKV() *FakeKV {
	return &FakeKV{
		values: make(map[string]string),
	}
}

func (kv *FakeKV) Get(key string) (string, bool) {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	v, ok := kv.values[key]
	return v, ok
}

func (kv *FakeKV) Set(key, value string) error {
	if kv.SetErr != nil {
		return kv.SetErr
	}

	kv.lock.Lock()
	defer kv.lock.Unlock()

	kv.values[key] = value
	return nil
}

func (kv *FakeKV) Delete(key string) error {
	if kv.DeleteErr != nil {
		return kv.DeleteErr
	}

	kv.lock.Lock()
	defer kv.lock.Unlock()

	delete(kv.values, key)
	return nil
}

// Len returns the number of stored keys.
func (kv *FakeKV) Len() int {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	return len(kv.values)
}
