// Package validation 설정 파일로 주어지는 네트워크 관련 입력값(CORS Origin, 호스트명, 포트)을 검증합니다.
package validation
