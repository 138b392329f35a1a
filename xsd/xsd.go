// Package xsd 피드 검증에 사용하는 Amazon MWS 스키마 파일을 실행 파일에 내장합니다.
package xsd

import "embed"

// Envelope 피드 문서 전체(AmazonEnvelope)를 정의하는 진입점 스키마 파일 이름
const Envelope = "amzn-envelope.xsd"

// FS 내장된 스키마 파일들
//
//go:embed *.xsd
var FS embed.FS
