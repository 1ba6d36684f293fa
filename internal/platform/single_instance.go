package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceLock keeps a second copy of the timer from starting alongside the first.
type InstanceLock struct {
	listener net.Listener
}

// AcquireInstanceLock binds a localhost port derived from appName.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in use", ErrAlreadyRunning, address)
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

// LockAddress returns the loopback address used as the lock for appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	port := minLockPort + int(hash.Sum32()%uint32(maxLockPort-minLockPort+1))
	return fmt.Sprintf("127.0.0.1:%d", port)
}
