package patcher

import (
	"fmt"

	"github.com/gofrs/flock"

	"auxpatch/internal/logging"
)

// acquireRunLock takes the advisory write lock without blocking.
func (p *Patcher) acquireRunLock() (func(), error) {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	lock := flock.New(p.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release run lock",
				logging.String("lock", p.cfg.LockPath()),
				logging.Error(err),
			)
		}
	}, nil
}
