package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the subset of redis.Cmdable the guards use. Calling
// any other method panics on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	mu   sync.Mutex
	vals map[string]string
	ttls map[string]time.Duration
	// err, when set, fails every command.
	err error
	// expireOnGet makes the next Get of a key miss, as if its TTL ran out
	// between two commands.
	expireOnGet map[string]bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		vals:        make(map[string]string),
		ttls:        make(map[string]time.Duration),
		expireOnGet: make(map[string]bool),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	if f.expireOnGet[key] {
		delete(f.expireOnGet, key)
		f.deleteLocked(key)
	}
	v, ok := f.vals[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "setnx", key, value)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	if _, ok := f.vals[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.vals[key] = fmt.Sprint(value)
	f.ttls[key] = expiration
	cmd.SetVal(true)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.vals[key] = fmt.Sprint(value)
	f.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.vals[k]; ok {
			n++
		}
		f.deleteLocked(k)
	}
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) TxPipeline() redis.Pipeliner {
	return &fakePipe{owner: f}
}

func (f *fakeRedis) deleteLocked(key string) {
	delete(f.vals, key)
	delete(f.ttls, key)
}

func (f *fakeRedis) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vals[key]
	return v, ok
}

func (f *fakeRedis) ttl(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}

// fakePipe queues Incr and Expire and applies them together on Exec.
type fakePipe struct {
	redis.Pipeliner

	owner *fakeRedis
	ops   []func()
	cmds  []redis.Cmder
}

func (p *fakePipe) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	p.cmds = append(p.cmds, cmd)
	p.ops = append(p.ops, func() {
		n, _ := strconv.ParseInt(p.owner.vals[key], 10, 64)
		n++
		p.owner.vals[key] = strconv.FormatInt(n, 10)
		cmd.SetVal(n)
	})
	return cmd
}

func (p *fakePipe) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key, expiration)
	p.cmds = append(p.cmds, cmd)
	p.ops = append(p.ops, func() {
		_, ok := p.owner.vals[key]
		if ok {
			p.owner.ttls[key] = expiration
		}
		cmd.SetVal(ok)
	})
	return cmd
}

func (p *fakePipe) Exec(_ context.Context) ([]redis.Cmder, error) {
	p.owner.mu.Lock()
	defer p.owner.mu.Unlock()
	if p.owner.err != nil {
		return nil, p.owner.err
	}
	for _, op := range p.ops {
		op()
	}
	return p.cmds, nil
}
