// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package smpp

import (
	"sync"
	"time"
)

// tokenBucket is a per-session throughput limiter refilled once per second
// to the configured rate, per §4.6 "token counter refilled every second".
type tokenBucket struct {
	mu        sync.Mutex
	rate      int
	tokens    int
	lastRefill time.Time
}

func newTokenBucket(ratePerSec int) *tokenBucket {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &tokenBucket{rate: ratePerSec, tokens: ratePerSec, lastRefill: time.Now()}
}

func (b *tokenBucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := time.Since(b.lastRefill); elapsed >= time.Second {
		refills := int(elapsed / time.Second)
		b.tokens = min(b.rate, b.tokens+refills*b.rate)
		b.lastRefill = b.lastRefill.Add(time.Duration(refills) * time.Second)
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
