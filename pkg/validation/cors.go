package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// ValidateCORSOrigin origin이 'scheme://host[:port]' 형식의 CORS Origin인지 검증합니다.
//
// 와일드카드('*')는 허용되며, 스키마는 http 또는 https여야 합니다.
// 경로, 후행 슬래시, 쿼리, 프래그먼트, 사용자 정보는 포함할 수 없습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (origin=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin이 올바른 URL이 아닙니다 (origin=%q): %w", origin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin의 스키마는 http 또는 https여야 합니다 (origin=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin은 스키마, 호스트, 포트만 포함할 수 있습니다 (origin=%q)", origin)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("CORS Origin의 포트가 숫자가 아닙니다 (origin=%q)", origin)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin의 포트가 올바르지 않습니다 (origin=%q): %w", origin, err)
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin에 호스트가 없습니다 (origin=%q)", origin)
	}
	if err := ValidateHostname(host); err != nil {
		return fmt.Errorf("CORS Origin의 호스트가 올바르지 않습니다 (origin=%q): %w", origin, err)
	}

	return nil
}

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname 호스트명이 localhost, IP 주소, 또는 RFC 1123 형식의 도메인명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > maxHostnameLength {
		return fmt.Errorf("호스트명은 %d자를 초과할 수 없습니다 (len=%d)", maxHostnameLength, len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return fmt.Errorf("%w (host=%q)", err, host)
		}
	}

	// 최상위 도메인은 숫자로만 이루어질 수 없다.
	if tld := labels[len(labels)-1]; strings.Trim(tld, "0123456789") == "" {
		return fmt.Errorf("최상위 도메인은 숫자로만 구성될 수 없습니다 (tld=%q)", tld)
	}

	return nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("호스트명에 빈 레이블이 있습니다")
	}
	if len(label) > maxLabelLength {
		return fmt.Errorf("레이블은 %d자를 초과할 수 없습니다 (label=%q)", maxLabelLength, label)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
	}
	for _, r := range label {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)만 사용할 수 있습니다 (char=%q)", r)
		}
	}
	return nil
}
