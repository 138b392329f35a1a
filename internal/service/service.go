// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 서비스 종료 신호(serviceStopCtx)를 받을 때까지 동작하는 백그라운드 서비스입니다.
//
// 구현체는 Start의 성공 여부와 관계없이 serviceStopWG.Done()을 정확히 한 번 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
