package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로그 파일들의 리소스 해제를 통합 관리합니다.
// hook을 먼저 닫아 닫힌 파일에 대한 쓰기를 차단하고, 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
